package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Initializer creates the schema and seeds demo data, reporting whether
// anything was seeded.
type Initializer func(ctx context.Context) (bool, error)

type SystemHandler struct {
	init Initializer
}

func NewSystemHandler(init Initializer) *SystemHandler {
	return &SystemHandler{init: init}
}

func (h *SystemHandler) InitDatabase(c *gin.Context) {
	seeded, err := h.init(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Database initialized successfully",
		"seeded":  seeded,
	})
}

func (h *SystemHandler) Health(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"status": "ok"})
}
