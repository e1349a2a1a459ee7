package handlers

import (
	"net/http"

	"heartsupport/internal/middleware"
	"heartsupport/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts    *services.PostService
	settings *services.SettingsService
}

func NewPostHandler(posts *services.PostService, settings *services.SettingsService) *PostHandler {
	return &PostHandler{posts: posts, settings: settings}
}

func (h *PostHandler) List(c *gin.Context) {
	limit, ok := queryLimit(c, services.DefaultListLimit, services.MaxListLimit)
	if !ok {
		return
	}
	posts, err := h.posts.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"posts": posts})
}

type createPostRequest struct {
	UserID  uint   `json:"userId"`
	Content string `json:"content"`
}

// Create publishes a post. A missing userId falls back to the session user.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == 0 {
		if user := middleware.CurrentUser(c); user != nil {
			req.UserID = user.ID
		}
	}
	post, err := h.posts.Create(c.Request.Context(), req.UserID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) Like(c *gin.Context) {
	id, ok := paramID(c, "id", "post")
	if !ok {
		return
	}
	likes, err := h.posts.Like(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"post": gin.H{"id": id, "likes": likes}})
}

type reportRequest struct {
	ReportedBy string `json:"reportedBy"`
	Reason     string `json:"reason"`
	Type       string `json:"type"`
}

func (h *PostHandler) Report(c *gin.Context) {
	id, ok := paramID(c, "id", "post")
	if !ok {
		return
	}
	var req reportRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ReportedBy == "" {
		if user := middleware.CurrentUser(c); user != nil {
			req.ReportedBy = user.Email
		}
	}
	report, err := h.posts.Report(c.Request.Context(), id, req.ReportedBy, req.Reason, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"report": report})
}

// PublicSettings exposes the visitor-facing subset of the site settings.
func (h *PostHandler) PublicSettings(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"settings": st.Public()})
}
