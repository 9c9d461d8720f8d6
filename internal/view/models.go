package view

import (
	"strconv"

	"prooffolio/internal/models"
	"prooffolio/internal/service"
)

// Display budgets for entry link text, in runes.
const (
	featuredLinkBudget = 40
	gridLinkBudget     = 35
	editLinkBudget     = 50
)

// HomeView lists all profiles, filtered by the search query. The two empty
// states are distinct: NoneExist carries a create call-to-action, NoMatches
// does not.
type HomeView struct {
	Query     string
	Profiles  []ProfileCard
	NoneExist bool
	NoMatches bool
}

// ProfileCard is one row in the home listing.
type ProfileCard struct {
	Username string
	Name     string
	Image    string
	Initials string
	Tagline  string
}

// BuildHome builds the home view model from the full profile map.
func BuildHome(all map[string]models.Profile, query string) HomeView {
	results := service.SearchProfiles(all, query)

	v := HomeView{Query: query}
	if len(results) == 0 {
		if len(all) == 0 && query == "" {
			v.NoneExist = true
		} else {
			v.NoMatches = true
		}
		return v
	}

	v.Profiles = make([]ProfileCard, 0, len(results))
	for _, r := range results {
		tagline := r.Profile.Bio
		if tagline == "" {
			n := len(r.Profile.Entries)
			tagline = strconv.Itoa(n) + " item"
			if n != 1 {
				tagline += "s"
			}
		}
		v.Profiles = append(v.Profiles, ProfileCard{
			Username: r.Username,
			Name:     r.Profile.Name,
			Image:    r.Profile.Image,
			Initials: Initials(r.Profile.Name),
			Tagline:  tagline,
		})
	}
	return v
}

// EntryCard is one rendered entry on the public profile page.
type EntryCard struct {
	Title       string
	Description string
	Link        string
	DisplayLink string
	Thumbnail   string
	Tag         string
}

// ProfileView is the public profile page. Entries are partitioned into the
// single featured one (if any) and the rest in original order.
type ProfileView struct {
	Username     string
	Name         string
	Bio          string
	Image        string
	Initials     string
	IsOwner      bool
	HasEntries   bool
	Featured     *EntryCard
	Others       []EntryCard
	SectionTitle string
}

func entryCard(en models.Entry, linkBudget int) EntryCard {
	return EntryCard{
		Title:       en.Title,
		Description: en.Description,
		Link:        en.Link,
		DisplayLink: TruncateURL(en.Link, linkBudget),
		Thumbnail:   en.Thumbnail,
		Tag:         en.Tag,
	}
}

// BuildProfile builds the public profile view model. The session username
// decides whether the owner affordances show.
func BuildProfile(username string, p models.Profile, session string) ProfileView {
	v := ProfileView{
		Username:   username,
		Name:       p.Name,
		Bio:        p.Bio,
		Image:      p.Image,
		Initials:   Initials(p.Name),
		IsOwner:    session == username,
		HasEntries: len(p.Entries) > 0,
	}

	// The invariant allows at most one featured entry, but the store is
	// schema-less: render the first featured one and keep any stragglers
	// out of the grid.
	for _, en := range p.Entries {
		if en.Featured {
			if v.Featured == nil {
				card := entryCard(en, featuredLinkBudget)
				v.Featured = &card
			}
			continue
		}
		v.Others = append(v.Others, entryCard(en, gridLinkBudget))
	}

	if v.Featured != nil {
		v.SectionTitle = "More Work"
	} else {
		v.SectionTitle = "Work"
	}
	return v
}

// EntryRow is one row of the entries list on the edit page.
type EntryRow struct {
	ID          string
	Title       string
	Tag         string
	DisplayLink string
	Featured    bool
}

// EditView is the edit page: the profile info sub-form plus the entries list.
type EditView struct {
	Username string
	Name     string
	Bio      string
	Image    string
	Initials string
	Entries  []EntryRow
}

// BuildEdit builds the edit view model.
func BuildEdit(username string, p models.Profile) EditView {
	v := EditView{
		Username: username,
		Name:     p.Name,
		Bio:      p.Bio,
		Image:    p.Image,
		Initials: Initials(p.Name),
	}
	for _, en := range p.Entries {
		v.Entries = append(v.Entries, EntryRow{
			ID:          en.ID,
			Title:       en.Title,
			Tag:         en.Tag,
			DisplayLink: TruncateURL(en.Link, editLinkBudget),
			Featured:    en.Featured,
		})
	}
	return v
}

// CreateView is the create form, re-rendered with prior values after a
// rejected submission.
type CreateView struct {
	Username string
	Name     string
	Bio      string
	Image    string
}

// EntryFormView is the entry editor, empty for adds and pre-filled for edits.
type EntryFormView struct {
	Username    string
	ID          string
	Title       string
	Description string
	Link        string
	Thumbnail   string
	Tag         string
	Featured    bool
	IsEdit      bool
}

// BuildEntryForm pre-fills the entry editor from an existing entry. A zero
// entry produces the empty add form; a minted id marks the edit variant.
func BuildEntryForm(username string, en models.Entry) EntryFormView {
	return EntryFormView{
		Username:    username,
		ID:          en.ID,
		Title:       en.Title,
		Description: en.Description,
		Link:        en.Link,
		Thumbnail:   en.Thumbnail,
		Tag:         en.Tag,
		Featured:    en.Featured,
		IsEdit:      en.ID != "",
	}
}

// ConfirmView is the yes/no gate before a destructive action. Action is the
// POST target armed by the page; Cancel is where the no-path goes back to.
type ConfirmView struct {
	Heading string
	Text    string
	Action  string
	Cancel  string
}

// MessageView is a terminal state (not found, access denied) with a path
// back home.
type MessageView struct {
	Heading string
	Text    string
}
