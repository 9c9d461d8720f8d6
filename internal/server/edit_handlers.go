package server

import (
	"prooffolio/internal/models"
	"prooffolio/internal/router"
	"prooffolio/internal/service"
	"prooffolio/internal/view"

	"github.com/gofiber/fiber/v2"
)

// EditProfile handles GET /edit/:username, the owner dashboard.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	profile, err := s.profiles.Get(c.UserContext(), username)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		return s.fail(c, err)
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: "Edit Profile",
		View:  "edit",
		Data:  view.BuildEdit(username, *profile),
	})
}

// SaveProfileInfo handles POST /edit/:username/profile.
func (s *Server) SaveProfileInfo(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	_, err = s.svc.UpdateProfileInfo(c.UserContext(), service.UpdateProfileInfoInput{
		Username: username,
		Name:     c.FormValue("name"),
		Bio:      c.FormValue("bio"),
		Image:    c.FormValue("image"),
	})
	if err != nil {
		if models.IsValidation(err) {
			s.setFlash(c, err.Error())
			return c.Redirect(s.editPath(username), fiber.StatusSeeOther)
		}
		return s.fail(c, err)
	}

	s.setFlash(c, "Profile saved")
	return c.Redirect(s.editPath(username), fiber.StatusSeeOther)
}

// NewEntryForm handles GET /edit/:username/entries/new.
func (s *Server) NewEntryForm(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: "Add Content",
		View:  "entry_form",
		Data:  view.BuildEntryForm(username, models.Entry{}),
	})
}

// EditEntryForm handles GET /edit/:username/entries/:id.
func (s *Server) EditEntryForm(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	profile, err := s.profiles.Get(c.UserContext(), username)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		return s.fail(c, err)
	}

	entry := profile.EntryByID(c.Params("id"))
	if entry == nil {
		return s.renderNotFound(c)
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: "Edit Content",
		View:  "entry_form",
		Data:  view.BuildEntryForm(username, *entry),
	})
}

// SaveEntry handles POST /edit/:username/entries. A hidden id field
// distinguishes edits from additions.
func (s *Server) SaveEntry(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	entryID := c.FormValue("id")
	_, err = s.svc.SaveEntry(c.UserContext(), service.SaveEntryInput{
		Username:    username,
		EntryID:     entryID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Link:        c.FormValue("link"),
		Thumbnail:   c.FormValue("thumbnail"),
		Tag:         c.FormValue("tag"),
		Featured:    c.FormValue("featured") != "",
	})
	if err != nil {
		if models.IsValidation(err) {
			s.setFlash(c, err.Error())
			return c.Redirect(s.editPath(username), fiber.StatusSeeOther)
		}
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		return s.fail(c, err)
	}

	if entryID == "" {
		s.setFlash(c, "Content added")
	} else {
		s.setFlash(c, "Content updated")
	}
	return c.Redirect(s.editPath(username), fiber.StatusSeeOther)
}

// ConfirmDeleteEntry handles GET /edit/:username/entries/:id/delete.
func (s *Server) ConfirmDeleteEntry(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: "Delete Content",
		View:  "confirm",
		Data: view.ConfirmView{
			Heading: "Delete Content",
			Text:    "Are you sure? This action cannot be undone.",
			Action:  s.editPath(username) + "/entries/" + c.Params("id") + "/delete",
			Cancel:  s.editPath(username),
		},
	})
}

// DeleteEntry handles POST /edit/:username/entries/:id/delete.
func (s *Server) DeleteEntry(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	if err := s.svc.DeleteEntry(c.UserContext(), username, c.Params("id")); err != nil {
		return s.fail(c, err)
	}

	s.setFlash(c, "Content deleted")
	return c.Redirect(s.editPath(username), fiber.StatusSeeOther)
}

// ConfirmDeleteProfile handles GET /edit/:username/delete.
func (s *Server) ConfirmDeleteProfile(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: "Delete Profile",
		View:  "confirm",
		Data: view.ConfirmView{
			Heading: "Delete Profile",
			Text:    "This will permanently delete your profile and all content. Are you sure?",
			Action:  s.editPath(username) + "/delete",
			Cancel:  s.editPath(username),
		},
	})
}

// DeleteProfile handles POST /edit/:username/delete.
func (s *Server) DeleteProfile(c *fiber.Ctx) error {
	username, ok, err := s.requireOwner(c)
	if !ok {
		return err
	}

	if err := s.svc.DeleteProfile(c.UserContext(), username); err != nil {
		return s.fail(c, err)
	}

	s.setFlash(c, "Profile deleted")
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) editPath(username string) string {
	return router.Route{View: router.ViewEdit, Username: username}.Path()
}
