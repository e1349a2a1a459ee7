package handlers

import (
	"context"
	"net/http"

	"heartsupport/internal/models"
	"heartsupport/internal/services"
	"heartsupport/internal/store"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation dashboard API. Routes are mounted
// behind middleware.AdminRequired.
type AdminHandler struct {
	mod      *services.ModerationService
	settings *services.SettingsService
}

func NewAdminHandler(mod *services.ModerationService, settings *services.SettingsService) *AdminHandler {
	return &AdminHandler{mod: mod, settings: settings}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.mod.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) Activity(c *gin.Context) {
	limit, ok := queryLimit(c, services.DefaultActivityLimit, services.MaxListLimit)
	if !ok {
		return
	}
	entries, err := h.mod.Activity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"activity": entries})
}

// Posts

func (h *AdminHandler) Posts(c *gin.Context) {
	status, err := services.ParsePostStatus(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, ok := queryLimit(c, services.MaxListLimit, services.MaxListLimit)
	if !ok {
		return
	}
	posts, err := h.mod.Posts(c.Request.Context(), store.PostFilter{
		Query:  c.Query("q"),
		Status: status,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"posts": posts})
}

type editPostRequest struct {
	Content string `json:"content"`
}

func (h *AdminHandler) EditPost(c *gin.Context) {
	id, ok := paramID(c, "id", "post")
	if !ok {
		return
	}
	var req editPostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.mod.EditPost(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"post": post})
}

func (h *AdminHandler) ApprovePost(c *gin.Context) {
	h.postAction(c, h.mod.ApprovePost)
}

func (h *AdminHandler) RejectPost(c *gin.Context) {
	h.postAction(c, h.mod.RejectPost)
}

func (h *AdminHandler) postAction(c *gin.Context, action func(ctx context.Context, id uint) (*models.Post, error)) {
	id, ok := paramID(c, "id", "post")
	if !ok {
		return
	}
	post, err := action(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"post": post})
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := paramID(c, "id", "post")
	if !ok {
		return
	}
	if err := h.mod.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

// Users

func (h *AdminHandler) Users(c *gin.Context) {
	status, err := services.ParseUserStatus(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, ok := queryLimit(c, services.MaxListLimit, services.MaxListLimit)
	if !ok {
		return
	}
	users, err := h.mod.Users(c.Request.Context(), store.UserFilter{
		Query:  c.Query("q"),
		Status: status,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"users": users})
}

type editUserRequest struct {
	Email string `json:"email"`
}

func (h *AdminHandler) EditUser(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	var req editUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.mod.EditUser(c.Request.Context(), id, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	h.userAction(c, h.mod.BanUser)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	h.userAction(c, h.mod.UnbanUser)
}

func (h *AdminHandler) userAction(c *gin.Context, action func(ctx context.Context, id uint) (*models.User, error)) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	user, err := action(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.mod.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// Reports

func (h *AdminHandler) Reports(c *gin.Context) {
	status, err := services.ParseReportStatus(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, ok := queryLimit(c, services.MaxListLimit, services.MaxListLimit)
	if !ok {
		return
	}
	reports, err := h.mod.Reports(c.Request.Context(), store.ReportFilter{Status: status, Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"reports": reports})
}

func (h *AdminHandler) Report(c *gin.Context) {
	id, ok := paramID(c, "id", "report")
	if !ok {
		return
	}
	report, err := h.mod.Report(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"report": report})
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	h.reportAction(c, h.mod.ResolveReport)
}

func (h *AdminHandler) DismissReport(c *gin.Context) {
	h.reportAction(c, h.mod.DismissReport)
}

func (h *AdminHandler) reportAction(c *gin.Context, action func(ctx context.Context, id uint) (*models.Report, error)) {
	id, ok := paramID(c, "id", "report")
	if !ok {
		return
	}
	report, err := action(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"report": report})
}

// Settings

func (h *AdminHandler) Settings(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"settings": st})
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	current, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	// Fields absent from the body keep their current value.
	if !bindJSON(c, &current) {
		return
	}
	st, err := h.settings.Update(c.Request.Context(), current)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"settings": st})
}
