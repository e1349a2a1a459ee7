package handlers

import (
	"net/http"

	"heartsupport/internal/middleware"
	"heartsupport/internal/models"
	"heartsupport/internal/services"
	"heartsupport/internal/store"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the server-side HTML views.
type PageHandler struct {
	posts    *services.PostService
	mod      *services.ModerationService
	settings *services.SettingsService
}

func NewPageHandler(posts *services.PostService, mod *services.ModerationService, settings *services.SettingsService) *PageHandler {
	return &PageHandler{posts: posts, mod: mod, settings: settings}
}

func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := h.posts.List(ctx, services.DefaultListLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	st, err := h.settings.Get(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{
		"Posts":    posts,
		"Settings": st.Public(),
	})
}

func (h *PageHandler) Admin(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil || !user.IsAdmin() {
		Render(c, http.StatusForbidden, "admin.html", gin.H{"Error": "Admin access required"})
		return
	}

	ctx := c.Request.Context()
	stats, err := h.mod.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	reports, err := h.mod.Reports(ctx, store.ReportFilter{Status: models.ReportPending, Limit: services.DefaultListLimit})
	if err != nil {
		respondError(c, err)
		return
	}
	pending, err := h.mod.Posts(ctx, store.PostFilter{Status: models.PostPending, Limit: services.DefaultListLimit})
	if err != nil {
		respondError(c, err)
		return
	}
	activity, err := h.mod.Activity(ctx, services.DefaultActivityLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	Render(c, http.StatusOK, "admin.html", gin.H{
		"Stats":        stats,
		"Reports":      reports,
		"PendingPosts": pending,
		"Activity":     activity,
	})
}
