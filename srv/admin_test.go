package srv

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrgen.exe.dev/db/dbgen"
)

// adminRequest performs a request authenticated with the admin cookie.
func adminRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	loginReq := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString("password=admin-secret"))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range loginRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAdminListAccountsHidesCredentials(t *testing.T) {
	s := newTestServer(t)
	createTestAccount(t, s, "alice@example.com", "starter")

	rec := adminRequest(t, s, http.MethodGet, "/api/admin/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var accounts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "alice@example.com", accounts[0]["email"])
	assert.NotContains(t, accounts[0], "apiKey")
	assert.NotContains(t, accounts[0], "bearerToken")
	assert.NotContains(t, rec.Body.String(), "br_")
}

func TestAdminSetAccountPlan(t *testing.T) {
	s := newTestServer(t)
	account := createTestAccount(t, s, "alice@example.com", "free")

	rec := adminRequest(t, s, http.MethodPost, "/api/admin/accounts/"+account.ID+"/plan", map[string]any{"plan": "business"})
	require.Equal(t, http.StatusOK, rec.Code)

	refreshed, err := dbgen.New(s.DB).GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "business", refreshed.Plan)

	rec = adminRequest(t, s, http.MethodPost, "/api/admin/accounts/"+account.ID+"/plan", map[string]any{"plan": "platinum"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = adminRequest(t, s, http.MethodPost, "/api/admin/accounts/missing/plan", map[string]any{"plan": "starter"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeactivateAccountCutsAPIAccess(t *testing.T) {
	s := newTestServer(t)
	account := createTestAccount(t, s, "alice@example.com", "starter")

	rec := adminRequest(t, s, http.MethodPost, "/api/admin/accounts/"+account.ID+"/active", map[string]any{"active": false})
	require.Equal(t, http.StatusOK, rec.Code)

	apiRec := doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(account), generateBody("hello"))
	assert.Equal(t, http.StatusUnauthorized, apiRec.Code)
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	account := createTestAccount(t, s, "alice@example.com", "starter")

	rec := doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(account), generateBody("https://example.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(account), generateBody("plain"))
	require.Equal(t, http.StatusOK, rec.Code)

	statsRec := adminRequest(t, s, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, statsRec.Code)
	stats := decodeBody(t, statsRec)
	assert.Equal(t, float64(1), stats["totalAccounts"])
	assert.Equal(t, float64(2), stats["totalConversions"])
	byType := stats["conversionsByType"].(map[string]any)
	assert.Equal(t, float64(1), byType["url"])
	assert.Equal(t, float64(1), byType["text"])
}

func TestAdminUpdateConfigRoundTrip(t *testing.T) {
	s := newTestServer(t)

	msg := "Scheduled maintenance"
	rec := adminRequest(t, s, http.MethodPost, "/api/admin/config", appConfigPayload{
		IsMaintenance:          true,
		MaintenanceMessage:     &msg,
		EnableUserRegistration: false,
		DefaultFreePlanLimit:   25,
		ConversionResetPeriod:  "monthly",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	getRec := adminRequest(t, s, http.MethodGet, "/api/admin/config", nil)
	require.Equal(t, http.StatusOK, getRec.Code)
	var cfg appConfigPayload
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &cfg))
	assert.True(t, cfg.IsMaintenance)
	require.NotNil(t, cfg.MaintenanceMessage)
	assert.Equal(t, msg, *cfg.MaintenanceMessage)
	assert.False(t, cfg.EnableUserRegistration)
	assert.Equal(t, int64(25), cfg.DefaultFreePlanLimit)
}
