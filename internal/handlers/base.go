package handlers

import (
	"log/slog"
	"time"

	"heartsupport/internal/apperr"
	"heartsupport/internal/middleware"
	"heartsupport/internal/utils"

	"github.com/gin-gonic/gin"
)

// Render injects the common page variables and renders an HTML template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path
	obj["Now"] = time.Now()
	c.HTML(code, name, obj)
}

// respond writes a success envelope.
func respond(c *gin.Context, code int, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["success"] = true
	c.JSON(code, obj)
}

// respondError writes a failure envelope. Unclassified errors are logged
// with their cause and reported as a generic internal error.
func respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.InternalError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(e.Kind), gin.H{
		"success": false,
		"error":   e.Kind,
		"message": e.Message,
	})
}

// paramID parses the :name path parameter as a positive id.
func paramID(c *gin.Context, name, what string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		respondError(c, apperr.Validation("Invalid "+what+" ID"))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into obj.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return false
	}
	return true
}

// NoRoute and NoMethod keep unmatched requests inside the JSON envelope.
func NoRoute(c *gin.Context) {
	respondError(c, apperr.New(apperr.NotFound, "Not found"))
}

func NoMethod(c *gin.Context) {
	respondError(c, apperr.New(apperr.MethodNotAllowed, "Method not allowed"))
}

func queryLimit(c *gin.Context, def, max int) (int, bool) {
	limit, ok := utils.ParseLimit(c.Query("limit"), def, max)
	if !ok {
		respondError(c, apperr.Validation("Invalid limit"))
		return 0, false
	}
	return limit, true
}
