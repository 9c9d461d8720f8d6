package server

import (
	"bytes"
	"log/slog"
	"time"

	"prooffolio/internal/models"
	"prooffolio/internal/view"

	"github.com/gofiber/fiber/v2"
)

// flashCookie carries a one-shot notification across a redirect.
const flashCookie = "flash"

func (s *Server) setFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    message,
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(time.Minute),
	})
}

// popFlash reads and clears the pending flash message.
func (s *Server) popFlash(c *fiber.Ctx) string {
	message := c.Cookies(flashCookie)
	if message != "" {
		c.Cookie(&fiber.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			Expires:  time.Now().Add(-time.Hour),
		})
	}
	return message
}

// session returns the active username, or "". A storage error reads as
// signed out rather than failing the request.
func (s *Server) session(c *fiber.Ctx) string {
	username, err := s.sessions.Get(c.UserContext())
	if err != nil {
		slog.WarnContext(c.UserContext(), "session read failed", "error", err)
		return ""
	}
	return username
}

// render writes a full page. The session is attached here so handlers only
// fill in the view-specific parts. The flash cookie only carries a message
// across a redirect; a handler rendering in the same response sets page.Flash
// itself, and the cookie is left alone so it is not consumed early.
func (s *Server) render(c *fiber.Ctx, status int, page view.Page) error {
	page.Session = s.session(c)
	if page.Flash == "" {
		page.Flash = s.popFlash(c)
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		slog.ErrorContext(c.UserContext(), "render failed", "view", page.View, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// renderNotFound renders the terminal not-found state for a profile address.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusNotFound, view.Page{
		Title: "Profile not found",
		View:  "message",
		Data: view.MessageView{
			Heading: "Profile not found",
			Text:    "There's no portfolio at this address.",
		},
	})
}

// renderAccessDenied renders the terminal access-denied state for edit routes.
func (s *Server) renderAccessDenied(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusForbidden, view.Page{
		Title: "Access denied",
		View:  "message",
		Data: view.MessageView{
			Heading: "Access denied",
			Text:    "You can only edit your own profile.",
		},
	})
}

// requireOwner checks that the session matches the route username. When it
// does not, the access-denied page is written and ok is false.
func (s *Server) requireOwner(c *fiber.Ctx) (username string, ok bool, err error) {
	username = c.Params("username")
	if s.session(c) != username {
		return "", false, s.renderAccessDenied(c)
	}
	return username, true, nil
}

// fail maps a service error onto the right page or response.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case models.IsNotFound(err):
		return s.renderNotFound(c)
	default:
		slog.ErrorContext(c.UserContext(), "request failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal error")
	}
}
