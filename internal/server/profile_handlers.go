package server

import (
	"prooffolio/internal/models"
	"prooffolio/internal/router"
	"prooffolio/internal/service"
	"prooffolio/internal/validation"
	"prooffolio/internal/view"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET / with an optional q search parameter.
func (s *Server) Home(c *fiber.Ctx) error {
	all, err := s.profiles.List(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}

	query := c.Query("q")
	return s.render(c, fiber.StatusOK, view.Page{
		View: "home",
		Data: view.BuildHome(all, query),
	})
}

// PublicProfile handles GET /:username, the public portfolio page.
func (s *Server) PublicProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	profile, err := s.profiles.Get(c.UserContext(), username)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderNotFound(c)
		}
		return s.fail(c, err)
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: profile.Name,
		View:  "profile",
		Data:  view.BuildProfile(username, *profile, s.session(c)),
	})
}

// CreateForm handles GET /create. A device with an active session already
// owns a profile, so it is redirected straight to its edit view.
func (s *Server) CreateForm(c *fiber.Ctx) error {
	if active := s.session(c); active != "" {
		return c.Redirect(router.Route{View: router.ViewEdit, Username: active}.Path(), fiber.StatusSeeOther)
	}

	return s.render(c, fiber.StatusOK, view.Page{
		Title: "Create Profile",
		View:  "create",
		Data:  view.CreateView{},
	})
}

// CreateProfile handles POST /create.
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	if active := s.session(c); active != "" {
		return c.Redirect(router.Route{View: router.ViewEdit, Username: active}.Path(), fiber.StatusSeeOther)
	}

	in := service.CreateProfileInput{
		Username: c.FormValue("username"),
		Name:     c.FormValue("name"),
		Bio:      c.FormValue("bio"),
		Image:    c.FormValue("image"),
	}

	_, err := s.svc.CreateProfile(c.UserContext(), in)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if models.IsConflict(err) {
			status = fiber.StatusConflict
		}
		if models.IsValidation(err) || models.IsConflict(err) {
			return s.render(c, status, view.Page{
				Title: "Create Profile",
				View:  "create",
				Flash: err.Error(),
				Data: view.CreateView{
					Username: in.Username,
					Name:     in.Name,
					Bio:      in.Bio,
					Image:    in.Image,
				},
			})
		}
		return s.fail(c, err)
	}

	s.setFlash(c, "Profile created!")
	return c.Redirect(router.Route{View: router.ViewEdit, Username: validation.Slugify(in.Username)}.Path(), fiber.StatusSeeOther)
}

// LegacyAddress handles GET /resolve, the landing point for fragment-style
// addresses from the previous single-page version. The layout forwards
// location.hash here as the f parameter; the address grammar maps it onto a
// path, with anything unrecognized landing on the directory. Running targets
// through the grammar also means f can never redirect off-site.
func (s *Server) LegacyAddress(c *fiber.Ctx) error {
	return c.Redirect(router.Resolve(c.Query("f")).Path(), fiber.StatusMovedPermanently)
}

// Logout handles POST /logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.svc.SignOut(c.UserContext()); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
