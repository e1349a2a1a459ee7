package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"heartsupport/internal/services"
	"heartsupport/internal/store"
	"heartsupport/internal/testutil"
	"heartsupport/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newAuthEngine mounts the auth routes behind a cookie session. With
// oversized set, the session carries more data than a cookie can hold, so
// every Save fails.
func newAuthEngine(t *testing.T, oversized bool) *gin.Engine {
	svc := services.New(store.New(testutil.NewDB(t)), utils.NewBcryptVerifier(bcrypt.MinCost))
	h := NewAuthHandler(svc.Auth)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	if oversized {
		r.Use(func(c *gin.Context) {
			sessions.Default(c).Set("padding", strings.Repeat("x", 8192))
		})
	}
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthStartsSession(t *testing.T) {
	c := qt.New(t)
	r := newAuthEngine(t, false)
	creds := map[string]string{"email": "a@x.io", "password": "secret1"}

	for _, path := range []string{"/register", "/login"} {
		w := postJSON(r, path, creds)
		c.Assert(w.Code, qt.Equals, http.StatusOK, qt.Commentf("%s", path))
		c.Assert(w.Result().Cookies(), qt.HasLen, 1, qt.Commentf("%s", path))
	}
}

func TestSessionSaveFailureIsNotFatal(t *testing.T) {
	c := qt.New(t)
	r := newAuthEngine(t, true)
	creds := map[string]string{"email": "a@x.io", "password": "secret1"}

	// Register and login follow the same policy: the user is returned and
	// no session cookie is set.
	for _, path := range []string{"/register", "/login"} {
		w := postJSON(r, path, creds)
		c.Assert(w.Code, qt.Equals, http.StatusOK, qt.Commentf("%s", path))
		c.Assert(w.Body.String(), qt.Contains, `"email":"a@x.io"`)
		c.Assert(w.Result().Cookies(), qt.HasLen, 0, qt.Commentf("%s", path))
	}
}
