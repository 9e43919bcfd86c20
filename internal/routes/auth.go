package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scolara/scolara-auth/internal/account"
	"github.com/scolara/scolara-auth/internal/auth"
)

// RegisterAuthRoutes wires the public registration and login endpoints, one
// pair per role.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	students := r.Group("/students")
	students.Post("/register", h.Register(account.RoleStudent))
	students.Post("/login", h.Login(account.RoleStudent))

	teachers := r.Group("/teachers")
	teachers.Post("/register", h.Register(account.RoleTeacher))
	teachers.Post("/login", h.Login(account.RoleTeacher))

	admins := r.Group("/admins")
	admins.Post("/register", h.Register(account.RoleAdmin))
	admins.Post("/login", h.Login(account.RoleAdmin))
}

// RegisterSessionRoutes wires endpoints that require an authenticated
// principal.
func RegisterSessionRoutes(r fiber.Router, h *auth.Handler) {
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}
