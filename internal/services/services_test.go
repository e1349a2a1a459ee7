package services

import (
	"context"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"golang.org/x/crypto/bcrypt"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/store"
	"heartsupport/internal/testutil"
	"heartsupport/internal/utils"
)

func newServices(t *testing.T) (*Services, *store.Store) {
	st := store.New(testutil.NewDB(t))
	return New(st, utils.NewBcryptVerifier(bcrypt.MinCost)), st
}

func register(c *qt.C, svc *Services, email string) *models.User {
	u, err := svc.Auth.Register(context.Background(), email, "secret1")
	c.Assert(err, qt.IsNil)
	return u
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()

	u, err := svc.Auth.Register(ctx, "  Anna@Example.COM ", "secret1")
	c.Assert(err, qt.IsNil)
	c.Assert(u.Email, qt.Equals, "anna@example.com")
	c.Assert(u.Status, qt.Equals, models.UserActive)
	c.Assert(u.PasswordHash, qt.Not(qt.Equals), "secret1")

	got, err := svc.Auth.Login(ctx, "ANNA@example.com", "secret1")
	c.Assert(err, qt.IsNil)
	c.Assert(got.ID, qt.Equals, u.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	register(qt.New(t), svc, "taken@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		kind     apperr.Kind
		msg      string
	}{
		{"missing email", "", "secret1", apperr.ValidationError, "Email and password are required"},
		{"missing password", "a@b.c", "", apperr.ValidationError, "Email and password are required"},
		{"short password", "a@b.c", "12345", apperr.ValidationError, "Password must be at least 6 characters"},
		{"not an email", "nobody", "secret1", apperr.ValidationError, "Invalid email address"},
		{"bare at", "@", "secret1", apperr.ValidationError, "Invalid email address"},
		{"no domain", "a@", "secret1", apperr.ValidationError, "Invalid email address"},
		{"no local part", "@b", "secret1", apperr.ValidationError, "Invalid email address"},
		{"duplicate other case", "TAKEN@example.com", "secret1", apperr.DuplicateUser, "User already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := svc.Auth.Register(ctx, tt.email, tt.password)
			c.Assert(apperr.KindOf(err), qt.Equals, tt.kind)
			c.Assert(apperr.From(err).Message, qt.Equals, tt.msg)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	register(c, svc, "anna@example.com")

	_, unknown := svc.Auth.Login(ctx, "nobody@example.com", "secret1")
	_, wrong := svc.Auth.Login(ctx, "anna@example.com", "wrong-password")
	c.Assert(unknown, qt.ErrorIs, apperr.ErrInvalidCredential)
	c.Assert(wrong, qt.ErrorIs, apperr.ErrInvalidCredential)
	c.Assert(unknown.Error(), qt.Equals, wrong.Error())
}

func TestBannedUserCannotLogin(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")

	_, err := svc.Moderation.BanUser(ctx, u.ID)
	c.Assert(err, qt.IsNil)

	for _, pw := range []string{"secret1", "wrong-password"} {
		_, err := svc.Auth.Login(ctx, "anna@example.com", pw)
		c.Assert(err, qt.ErrorIs, apperr.ErrSuspended)
		c.Assert(err.Error(), qt.Equals, "Account has been suspended")
	}

	_, err = svc.Auth.SessionUser(ctx, u.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrSuspended)

	_, err = svc.Moderation.UnbanUser(ctx, u.ID)
	c.Assert(err, qt.IsNil)
	_, err = svc.Auth.Login(ctx, "anna@example.com", "secret1")
	c.Assert(err, qt.IsNil)
}

func TestCreatePostValidation(t *testing.T) {
	c := qt.New(t)
	svc, st := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")

	_, err := svc.Posts.Create(ctx, u.ID, strings.Repeat("a", 2001))
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	c.Assert(err.Error(), qt.Equals, "Content too long (max 2000 characters)")

	_, err = svc.Posts.Create(ctx, u.ID, "   ")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	_, err = svc.Posts.Create(ctx, 0, "hello")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	_, err = svc.Posts.Create(ctx, 999, "hello")
	c.Assert(err, qt.ErrorIs, apperr.ErrNotFound)

	posts, err := st.ListPosts(ctx, store.PostFilter{})
	c.Assert(err, qt.IsNil)
	c.Assert(posts, qt.HasLen, 0)

	p, err := svc.Posts.Create(ctx, u.ID, strings.Repeat("é", 2000))
	c.Assert(err, qt.IsNil)
	c.Assert(p.Status, qt.Equals, models.PostApproved)
	c.Assert(p.AnonymousID, qt.Matches, `anonymous_user_[0-9a-f]{8}`)
	c.Assert(p.Comments, qt.Equals, 0)

	owner, err := st.UserByID(ctx, u.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(owner.PostCount, qt.Equals, 1)
}

func TestCreatePostHonoursSettings(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")

	settings, err := svc.Settings.Get(ctx)
	c.Assert(err, qt.IsNil)
	settings.RequireApproval = true
	settings.MaxPosts = 2
	_, err = svc.Settings.Update(ctx, settings)
	c.Assert(err, qt.IsNil)

	p, err := svc.Posts.Create(ctx, u.ID, "first")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Status, qt.Equals, models.PostPending)
	_, err = svc.Posts.Create(ctx, u.ID, "second")
	c.Assert(err, qt.IsNil)

	_, err = svc.Posts.Create(ctx, u.ID, "third")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	c.Assert(err, qt.ErrorMatches, "Daily post limit reached.*")

	svc.Posts.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = svc.Posts.Create(ctx, u.ID, "tomorrow")
	c.Assert(err, qt.IsNil)

	listed, err := svc.Posts.List(ctx, DefaultListLimit)
	c.Assert(err, qt.IsNil)
	c.Assert(listed, qt.HasLen, 0)
}

func TestBannedUserCannotPost(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")

	_, err := svc.Moderation.BanUser(ctx, u.ID)
	c.Assert(err, qt.IsNil)
	_, err = svc.Posts.Create(ctx, u.ID, "hello")
	c.Assert(err, qt.ErrorIs, apperr.ErrSuspended)
}

func TestListOnlyApproved(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")

	approved, err := svc.Posts.Create(ctx, u.ID, "**visible**")
	c.Assert(err, qt.IsNil)

	settings, err := svc.Settings.Get(ctx)
	c.Assert(err, qt.IsNil)
	settings.RequireApproval = true
	_, err = svc.Settings.Update(ctx, settings)
	c.Assert(err, qt.IsNil)

	_, err = svc.Posts.Create(ctx, u.ID, "still pending")
	c.Assert(err, qt.IsNil)
	rejected, err := svc.Posts.Create(ctx, u.ID, "will be rejected")
	c.Assert(err, qt.IsNil)
	_, err = svc.Moderation.RejectPost(ctx, rejected.ID)
	c.Assert(err, qt.IsNil)
	_, err = svc.Moderation.ApprovePost(ctx, rejected.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidTransition)

	posts, err := svc.Posts.List(ctx, DefaultListLimit)
	c.Assert(err, qt.IsNil)
	c.Assert(posts, qt.HasLen, 1)
	c.Assert(posts[0].ID, qt.Equals, approved.ID)
	c.Assert(posts[0].ContentHTML, qt.Contains, "<strong>visible</strong>")

	_, err = svc.Posts.List(ctx, 0)
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	_, err = svc.Posts.List(ctx, MaxListLimit+1)
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
}

func TestLikeIncrements(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")
	p, err := svc.Posts.Create(ctx, u.ID, "like me")
	c.Assert(err, qt.IsNil)

	var likes int
	for i := 0; i < 5; i++ {
		likes, err = svc.Posts.Like(ctx, p.ID)
		c.Assert(err, qt.IsNil)
	}
	c.Assert(likes, qt.Equals, 5)

	_, err = svc.Posts.Like(ctx, 42)
	c.Assert(err, qt.ErrorIs, apperr.ErrNotFound)
}

func TestReportPost(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")
	p, err := svc.Posts.Create(ctx, u.ID, "questionable")
	c.Assert(err, qt.IsNil)

	r, err := svc.Posts.Report(ctx, p.ID, "", "  spam  ", "")
	c.Assert(err, qt.IsNil)
	c.Assert(r.Status, qt.Equals, models.ReportPending)
	c.Assert(r.Reason, qt.Equals, "spam")
	c.Assert(r.ReportType, qt.Equals, "Other")
	c.Assert(r.ReportedBy, qt.Equals, "anonymous")

	_, err = svc.Posts.Report(ctx, p.ID, "x@y.z", "", "Spam")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	_, err = svc.Posts.Report(ctx, 999, "x@y.z", "spam", "Spam")
	c.Assert(err, qt.ErrorIs, apperr.ErrNotFound)

	resolved, err := svc.Moderation.ResolveReport(ctx, r.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(resolved.Status, qt.Equals, models.ReportResolved)
	_, err = svc.Moderation.ResolveReport(ctx, r.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidTransition)
	_, err = svc.Moderation.DismissReport(ctx, r.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidTransition)
}

func TestAdminAccountsAreProtected(t *testing.T) {
	c := qt.New(t)
	svc, st := newServices(t)
	ctx := context.Background()

	admin := &models.User{Email: "admin@heartsupport.com", PasswordHash: "h", Status: models.UserAdmin}
	c.Assert(st.CreateUser(ctx, admin), qt.IsNil)

	_, err := svc.Moderation.BanUser(ctx, admin.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidTransition)
	err = svc.Moderation.DeleteUser(ctx, admin.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrForbidden)
}

func TestEditUserAndPost(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()
	u := register(c, svc, "anna@example.com")
	register(c, svc, "ben@example.com")

	edited, err := svc.Moderation.EditUser(ctx, u.ID, " Anna2@Example.com")
	c.Assert(err, qt.IsNil)
	c.Assert(edited.Email, qt.Equals, "anna2@example.com")
	_, err = svc.Moderation.EditUser(ctx, u.ID, "BEN@example.com")
	c.Assert(err, qt.ErrorIs, apperr.ErrDuplicateUser)

	p, err := svc.Posts.Create(ctx, u.ID, "typo")
	c.Assert(err, qt.IsNil)
	got, err := svc.Moderation.EditPost(ctx, p.ID, "fixed")
	c.Assert(err, qt.IsNil)
	c.Assert(got.Content, qt.Equals, "fixed")
	c.Assert(got.Status, qt.Equals, p.Status)
	_, err = svc.Moderation.EditPost(ctx, p.ID, strings.Repeat("x", 2001))
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
}

func TestSettingsUpdate(t *testing.T) {
	c := qt.New(t)
	svc, _ := newServices(t)
	ctx := context.Background()

	s, err := svc.Settings.Get(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(s.SiteName, qt.Equals, "HeartSupport")

	bad := s
	bad.SiteName = " "
	_, err = svc.Settings.Update(ctx, bad)
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
	bad = s
	bad.MaxPosts = -1
	_, err = svc.Settings.Update(ctx, bad)
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)

	s.SiteName = "Heart"
	_, err = svc.Settings.Update(ctx, s)
	c.Assert(err, qt.IsNil)
	got, err := svc.Settings.Get(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(got.SiteName, qt.Equals, "Heart")
}

func TestParseStatuses(t *testing.T) {
	c := qt.New(t)

	ps, err := ParsePostStatus("pending")
	c.Assert(err, qt.IsNil)
	c.Assert(ps, qt.Equals, models.PostPending)
	_, err = ParsePostStatus("deleted")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)

	rs, err := ParseReportStatus("")
	c.Assert(err, qt.IsNil)
	c.Assert(rs, qt.Equals, models.ReportStatus(""))
	_, err = ParseReportStatus("open")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)

	_, err = ParseUserStatus("ghost")
	c.Assert(err, qt.ErrorIs, apperr.ErrValidation)
}
