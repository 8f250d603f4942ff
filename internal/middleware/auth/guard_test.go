package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/repo"
	"github.com/restohub/bistro_backend/internal/tokens"
)

var testSecret = []byte("guard-secret")

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"email": IdentityEmail(c)})
}

func doRequest(t *testing.T, g *Guard, gated echo.HandlerFunc, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := gated(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	g := NewGuard(testSecret, &repo.GormRepo{DB: initTestDB(t)})
	rec := doRequest(t, g, g.RequireAuth(okHandler), "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "message")
}

func TestRequireAuthBadToken(t *testing.T) {
	g := NewGuard(testSecret, &repo.GormRepo{DB: initTestDB(t)})
	rec := doRequest(t, g, g.RequireAuth(okHandler), "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	g := NewGuard(testSecret, &repo.GormRepo{DB: initTestDB(t)})
	raw, err := tokens.Issue("x@y.com", []byte("other-secret"))
	require.NoError(t, err)

	rec := doRequest(t, g, g.RequireAuth(okHandler), "Bearer "+raw)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	g := NewGuard(testSecret, &repo.GormRepo{DB: initTestDB(t)})
	raw, err := tokens.Issue("x@y.com", testSecret)
	require.NoError(t, err)

	rec := doRequest(t, g, g.RequireAuth(okHandler), "Bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "x@y.com")
}

func TestRequireAdminNonAdmin(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, db.Create(&models.User{Email: "user@y.com"}).Error)
	g := NewGuard(testSecret, &repo.GormRepo{DB: db})

	raw, err := tokens.Issue("user@y.com", testSecret)
	require.NoError(t, err)

	rec := doRequest(t, g, g.RequireAuth(g.RequireAdmin(okHandler)), "Bearer "+raw)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminUnknownUser(t *testing.T) {
	g := NewGuard(testSecret, &repo.GormRepo{DB: initTestDB(t)})
	raw, err := tokens.Issue("ghost@y.com", testSecret)
	require.NoError(t, err)

	rec := doRequest(t, g, g.RequireAuth(g.RequireAdmin(okHandler)), "Bearer "+raw)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAdminUser(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, db.Create(&models.User{Email: "boss@y.com", Role: models.RoleAdmin}).Error)
	g := NewGuard(testSecret, &repo.GormRepo{DB: db})

	raw, err := tokens.Issue("boss@y.com", testSecret)
	require.NoError(t, err)

	rec := doRequest(t, g, g.RequireAuth(g.RequireAdmin(okHandler)), "Bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGateShortCircuitsBeforeStore(t *testing.T) {
	// without a valid token the role gate must never be reached
	called := false
	g := NewGuard(testSecret, &repo.GormRepo{DB: initTestDB(t)})
	gated := g.RequireAuth(g.RequireAdmin(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}))

	rec := doRequest(t, g, gated, "Bearer nope")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}
