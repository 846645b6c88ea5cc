package srv

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryListAndDelete(t *testing.T) {
	s := newTestServer(t)
	account := createTestAccount(t, s, "alice@example.com", "starter")

	rec := doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(account), generateBody("https://example.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(account), generateBody("plain note"))
	require.Equal(t, http.StatusOK, rec.Code)

	listRec := doRequest(t, s, http.MethodGet, "/api/history", credentialHeaders(account), nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var entries []historyEntry
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)

	delRec := doRequest(t, s, http.MethodDelete, "/api/history/"+entries[0].ID, credentialHeaders(account), nil)
	require.Equal(t, http.StatusOK, delRec.Code)

	listRec = doRequest(t, s, http.MethodGet, "/api/history", credentialHeaders(account), nil)
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
}

func TestHistoryIsScopedToAccount(t *testing.T) {
	s := newTestServer(t)
	alice := createTestAccount(t, s, "alice@example.com", "starter")
	bob := createTestAccount(t, s, "bob@example.com", "starter")

	rec := doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(alice), generateBody("alice's secret"))
	require.Equal(t, http.StatusOK, rec.Code)

	listRec := doRequest(t, s, http.MethodGet, "/api/history", credentialHeaders(bob), nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var entries []historyEntry
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &entries))
	assert.Empty(t, entries)

	// Bob cannot delete Alice's conversion either.
	aliceList := doRequest(t, s, http.MethodGet, "/api/history", credentialHeaders(alice), nil)
	require.NoError(t, json.Unmarshal(aliceList.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	delRec := doRequest(t, s, http.MethodDelete, "/api/history/"+entries[0].ID, credentialHeaders(bob), nil)
	assert.Equal(t, http.StatusNotFound, delRec.Code)
}

func TestDownloadConversion(t *testing.T) {
	s := newTestServer(t)
	account := createTestAccount(t, s, "alice@example.com", "starter")

	rec := doRequest(t, s, http.MethodPost, "/api/generate", credentialHeaders(account), generateBody("download me"))
	require.Equal(t, http.StatusOK, rec.Code)

	listRec := doRequest(t, s, http.MethodGet, "/api/history", credentialHeaders(account), nil)
	var entries []historyEntry
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)

	dlRec := doRequest(t, s, http.MethodGet, "/api/conversions/"+entries[0].ID+"/download", credentialHeaders(account), nil)
	require.Equal(t, http.StatusOK, dlRec.Code)
	assert.Equal(t, "image/png", dlRec.Header().Get("Content-Type"))
	raw := dlRec.Body.Bytes()
	require.GreaterOrEqual(t, len(raw), 4)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])

	missing := doRequest(t, s, http.MethodGet, "/api/conversions/nope/download", credentialHeaders(account), nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
