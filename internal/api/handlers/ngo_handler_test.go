package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"need-feeder-api-server/internal/models"
)

func TestGetVerifiedNgosExcludesPending(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/ngos/", donorToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ngos []models.NGO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ngos))
	require.Len(t, ngos, 2)
	for _, ngo := range ngos {
		assert.Equal(t, models.VerificationVerified, ngo.VerificationStatus)
	}
}

func TestFindNearbyReturnsVerifiedInRadius(t *testing.T) {
	env := newTestEnv(t)

	// Donor user-1 sits at (17.3850, 78.4867). Hope Foundation (~3.1 km,
	// Verified) must appear; Goodwill Shelter (~2.8 km, Pending) must not.
	w := env.do(http.MethodGet, "/api/v1/ngos/nearby/?radiusKm=5", donorToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		RadiusKm float64      `json:"radiusKm"`
		Ngos     []models.NGO `json:"ngos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5.0, resp.RadiusKm)

	ids := []string{}
	for _, ngo := range resp.Ngos {
		ids = append(ids, ngo.NgoID)
	}
	assert.Contains(t, ids, "ngo-1")
	assert.Contains(t, ids, "ngo-4")
	assert.NotContains(t, ids, "ngo-3")
}

func TestFindNearbyDefaultRadius(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/ngos/nearby/", donorToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RadiusKm float64 `json:"radiusKm"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5.0, resp.RadiusKm)
}

func TestFindNearbyRejectsBadRadius(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/ngos/nearby/?radiusKm=-2", donorToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/v1/ngos/nearby/?radiusKm=abc", donorToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindNearbyIsDonorOnly(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/ngos/nearby/", ngoToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetNgoByID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/ngos/ngo-1", donorToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ngo models.NGO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ngo))
	assert.Equal(t, "Hope Foundation", ngo.Name)

	w = env.do(http.MethodGet, "/api/v1/ngos/ngo-404", donorToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
