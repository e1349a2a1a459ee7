package router

import (
	"log/slog"

	"heartsupport/internal/handlers"
	"heartsupport/internal/middleware"
	"heartsupport/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "heartsupport_session"

type Options struct {
	SessionSecret string
	// TemplatesDir enables the HTML pages when non-empty.
	TemplatesDir string
	Logger       *slog.Logger
	Services     *services.Services
	Init         handlers.Initializer
}

// New builds the engine with the full middleware chain and all routes.
// CORS runs before the session so preflight requests touch no state.
func New(opts Options) (*gin.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.LoadUser(opts.Services.Auth))

	pages := opts.TemplatesDir != ""
	if pages {
		renderer, err := LoadTemplates(opts.TemplatesDir)
		if err != nil {
			return nil, err
		}
		r.HTMLRender = renderer
	}

	RegisterRoutes(r, opts.Services, opts.Init, pages)
	r.NoRoute(handlers.NoRoute)
	r.NoMethod(handlers.NoMethod)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, svc *services.Services, init handlers.Initializer, pages bool) {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	postHandler := handlers.NewPostHandler(svc.Posts, svc.Settings)
	adminHandler := handlers.NewAdminHandler(svc.Moderation, svc.Settings)
	systemHandler := handlers.NewSystemHandler(init)

	// Public API
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/session", authHandler.Session)

	r.GET("/posts", postHandler.List)
	r.POST("/posts", postHandler.Create)
	r.POST("/posts/:id/like", postHandler.Like)
	r.POST("/posts/:id/report", postHandler.Report)
	r.GET("/settings", postHandler.PublicSettings)

	r.POST("/init-database", systemHandler.InitDatabase)
	r.GET("/healthz", systemHandler.Health)

	// Admin API
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/activity", adminHandler.Activity)

		admin.GET("/posts", adminHandler.Posts)
		admin.PUT("/posts/:id", adminHandler.EditPost)
		admin.POST("/posts/:id/approve", adminHandler.ApprovePost)
		admin.POST("/posts/:id/reject", adminHandler.RejectPost)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)

		admin.GET("/users", adminHandler.Users)
		admin.PUT("/users/:id", adminHandler.EditUser)
		admin.POST("/users/:id/ban", adminHandler.BanUser)
		admin.POST("/users/:id/unban", adminHandler.UnbanUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/reports", adminHandler.Reports)
		admin.GET("/reports/:id", adminHandler.Report)
		admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)
		admin.POST("/reports/:id/dismiss", adminHandler.DismissReport)

		admin.GET("/settings", adminHandler.Settings)
		admin.PUT("/settings", adminHandler.UpdateSettings)
	}

	// Pages
	if pages {
		pageHandler := handlers.NewPageHandler(svc.Posts, svc.Moderation, svc.Settings)
		r.GET("/", pageHandler.Index)
		r.GET("/admin", pageHandler.Admin)
	}
}
