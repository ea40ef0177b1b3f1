package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/http/handlers"
	"github.com/spec-kit/family-photo-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Families       *handlers.FamiliesHandler
	Albums         *handlers.AlbumsHandler
	Photos         *handlers.PhotosHandler
	Letters        *handlers.LettersHandler
	Schedules      *handlers.SchedulesHandler
	Fonts          *handlers.FontsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Post("/reissue", cfg.Auth.Reissue)
	authGroup.Get("/logout", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Logout)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireUser())

	api.Get("/users/me", cfg.Users.Me)
	api.Patch("/users/me", cfg.Users.UpdateMe)
	api.Get("/users/me/letters/unread-count", cfg.Users.UnreadLetters)

	api.Post("/families", cfg.Families.Create)
	api.Post("/families/join", cfg.Families.Join)
	api.Get("/families/me", cfg.Families.Mine)
	api.Patch("/families/me", cfg.Families.Update)
	api.Get("/families/me/invite-code", cfg.Families.InviteCode)
	api.Get("/families/me/members", cfg.Families.Members)

	api.Post("/albums", cfg.Albums.Create)
	api.Get("/albums", cfg.Albums.List)
	api.Get("/albums/:id", cfg.Albums.Get)
	api.Patch("/albums/:id", cfg.Albums.Update)

	api.Post("/albums/:id/photos/prepare", cfg.Photos.PrepareUpload)
	api.Post("/albums/:id/photos", cfg.Photos.Register)
	api.Get("/albums/:id/photos", cfg.Photos.List)
	api.Post("/photos/move", cfg.Photos.Move)
	api.Post("/photos/:id/reviews", cfg.Photos.AddReview)
	api.Get("/photos/:id/reviews", cfg.Photos.ListReviews)

	api.Post("/letters", cfg.Letters.Send)
	api.Get("/letters", cfg.Letters.ListReceived)
	api.Get("/letters/:id", cfg.Letters.Read)

	api.Post("/schedules", cfg.Schedules.Create)
	api.Get("/schedules", cfg.Schedules.List)
	api.Patch("/schedules/:id", cfg.Schedules.Update)
	api.Delete("/schedules/:id", cfg.Schedules.Delete)
	api.Patch("/schedules/:id/album", cfg.Schedules.LinkAlbum)

	api.Post("/fonts", cfg.Fonts.Request)
	api.Get("/fonts/me", cfg.Fonts.Mine)
	api.Delete("/fonts/me", cfg.Fonts.Delete)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/fonts", cfg.Fonts.ListPending)
	admin.Patch("/fonts/:id", cfg.Fonts.Review)
}
