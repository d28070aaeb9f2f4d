package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/ok":
			w.Write([]byte(`{"status":"ok"}`))
		case "/v1/bad":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"data validation error","fields":{"amount":"amount must be a decimal number"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"actor \"0xA\" not found"}`))
		}
	}))
	defer srv.Close()

	serviceURL = srv.URL

	var v struct {
		Status string `json:"status"`
	}
	require.NoError(t, get("/v1/ok", &v))
	assert.Equal(t, "ok", v.Status)

	err := send(http.MethodPost, "/v1/bad", map[string]string{"amount": "x"}, &v)
	require.ErrorContains(t, err, "amount must be a decimal number")

	err = get("/v1/missing", &v)
	require.EqualError(t, err, `actor "0xA" not found`)
}

func TestKeys(t *testing.T) {
	accountPath = filepath.Join(t.TempDir(), "accounts")
	accountName = "kate"

	require.NoError(t, generateRun(generateCmd, nil))

	_, err := os.Stat(filepath.Join(accountPath, "kate.ecdsa"))
	require.NoError(t, err)

	address, err := loadAddress()
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(address))
}
