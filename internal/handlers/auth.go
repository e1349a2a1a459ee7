package handlers

import (
	"log/slog"
	"net/http"

	"heartsupport/internal/apperr"
	"heartsupport/internal/middleware"
	"heartsupport/internal/models"
	"heartsupport/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uint              `json:"id"`
	Email     string            `json:"email"`
	Status    models.UserStatus `json:"status"`
	CreatedAt string            `json:"created_at"`
}

func publicUser(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// startSession stores the user id in the cookie session. A failed save is
// logged and leaves the client logged out.
func startSession(c *gin.Context, u *models.User) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, u.ID)
	if err := session.Save(); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to save session", "user_id", u.ID, "error", err)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	startSession(c, user)
	respond(c, http.StatusOK, gin.H{"user": publicUser(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	startSession(c, user)
	respond(c, http.StatusOK, gin.H{"user": publicUser(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Session returns the logged-in user so a reloaded client can restore its state.
func (h *AuthHandler) Session(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, apperr.ErrUnauthorized)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": publicUser(user)})
}
