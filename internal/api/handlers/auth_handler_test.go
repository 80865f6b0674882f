package handlers_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"need-feeder-api-server/config"
	"need-feeder-api-server/internal/api/routes"
	"need-feeder-api-server/internal/auth"
	"need-feeder-api-server/internal/models"
	"need-feeder-api-server/internal/socket"
	"need-feeder-api-server/internal/store"
)

var (
	hashOnce     sync.Once
	passwordHash string
)

// bcrypt hashing is slow at our cost factor, hash the shared demo password once.
func demoHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		var err error
		passwordHash, err = auth.HashPassword("password123")
		require.NoError(t, err)
	})
	return passwordHash
}

func newLoginEnv(t *testing.T) *testEnv {
	t.Helper()

	hash := demoHash(t)
	mem := store.NewMemoryStore()
	mem.SeedUsers([]models.User{
		{UserID: "user-1", Name: "Akash Goud", Email: "akash@test.com", Password: hash, Location: models.GeoPoint{Lat: 17.3850, Lng: 78.4867}},
	})
	mem.SeedNgos([]models.NGO{
		{NgoID: "ngo-1", Name: "Hope Foundation", Email: "hope@test.com", Password: hash, VerificationStatus: models.VerificationVerified},
		{NgoID: "ngo-3", Name: "Goodwill Shelter", Email: "goodwill@test.com", Password: hash, VerificationStatus: models.VerificationPending},
	})

	router := routes.SetupRouter(routes.Deps{
		Cfg:       config.Config{},
		Users:     mem,
		Ngos:      mem.Ngos(),
		Donations: mem.Donations(),
		Hub:       socket.NewHub(),
	})
	return &testEnv{router: router, mem: mem}
}

func TestDonorLoginSuccess(t *testing.T) {
	env := newLoginEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/donor/login", "", gin.H{
		"email":    "akash@test.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.UserID)

	claims, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleDonor, claims.Role)
	assert.Equal(t, "user-1", claims.AccountID)
}

func TestDonorLoginWrongPassword(t *testing.T) {
	env := newLoginEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/donor/login", "", gin.H{
		"email":    "akash@test.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDonorLoginUnknownEmail(t *testing.T) {
	env := newLoginEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/donor/login", "", gin.H{
		"email":    "nobody@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNgoLoginSuccess(t *testing.T) {
	env := newLoginEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/ngo/login", "", gin.H{
		"email":    "hope@test.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleNGO, claims.Role)
	assert.Equal(t, "ngo-1", claims.AccountID)
}

func TestPendingNgoCannotLogin(t *testing.T) {
	env := newLoginEnv(t)

	// Goodwill Shelter has the right credentials but is still pending
	// verification, so the login is refused.
	w := env.do(http.MethodPost, "/api/v1/auth/ngo/login", "", gin.H{
		"email":    "goodwill@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginValidatesPayload(t *testing.T) {
	env := newLoginEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/donor/login", "", gin.H{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
