package routes

import (
	"time"

	"github.com/geotracker/backend/internal/config"
	"github.com/geotracker/backend/internal/handlers"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups everything Setup wires into the route table.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Reports  *handlers.ReportHandler
	Votes    *handlers.VoteHandler
	Comments *handlers.CommentHandler
	Users    *handlers.UserHandler
	Stats    *handlers.StatsHandler
	Metadata *handlers.MetadataHandler
	Health   *handlers.HealthHandler
}

func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, h Handlers) {
	app.Use(middleware.CORS(cfg))

	generalLimiter := limiter.New(limiter.Config{
		Max:               60,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	})

	protected := []fiber.Handler{middleware.Protected(cfg), middleware.LoadUser(db)}
	optional := middleware.OptionalAuth(db, cfg)

	app.Get("/health", h.Health.Health)

	if cfg.MinIOEndpoint == "" {
		app.Static("/uploads", cfg.UploadPath)
	}

	auth := app.Group("/auth", authLimiter)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/profile", append(protected, h.Auth.Profile)...)
	auth.Put("/profile", append(protected, h.Auth.UpdateProfile)...)

	api := app.Group("/", generalLimiter)

	api.Get("/reports", optional, h.Reports.Query)
	api.Post("/reports", append(protected, h.Reports.Create)...)
	api.Get("/my-reports", append(protected, h.Reports.ListMine)...)
	api.Get("/reports/:id", optional, h.Reports.Get)
	api.Put("/reports/:id", append(protected, h.Reports.Edit)...)
	api.Delete("/reports/:id", append(protected, h.Reports.Delete)...)
	api.Put("/reports/:id/status", append(protected,
		middleware.RequireRole(models.RoleModerator, models.RoleAdmin),
		h.Reports.UpdateStatus)...)

	api.Post("/reports/:id/vote", append(protected, h.Votes.Cast)...)
	api.Get("/reports/:id/votes", h.Votes.List)
	api.Get("/votes/summary", h.Votes.Summary)
	api.Delete("/votes/:id", append(protected, h.Votes.Remove)...)

	api.Post("/reports/:id/comments", append(protected, h.Comments.Add)...)
	api.Get("/reports/:id/comments", h.Comments.List)
	api.Put("/comments/:id", append(protected, h.Comments.Update)...)
	api.Delete("/comments/:id", append(protected, h.Comments.Delete)...)

	api.Get("/users", append(protected,
		middleware.RequireRole(models.RoleAdmin), h.Users.List)...)
	api.Put("/users/:id/status", append(protected,
		middleware.RequireRole(models.RoleAdmin), h.Users.UpdateStatus)...)
	api.Get("/users/leaderboard", h.Users.Leaderboard)

	api.Get("/stats/homepage", h.Stats.Homepage)
	api.Get("/stats/dashboard", append(protected, h.Stats.Dashboard)...)

	api.Get("/metadata", h.Metadata.Metadata)
	api.Get("/metadata/report-types", h.Metadata.ReportTypes)
	api.Get("/metadata/locations", h.Metadata.Locations)
}
