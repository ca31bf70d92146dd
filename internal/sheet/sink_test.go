package sheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSheetSinkPublish(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"spreadsheetId":  "abc123",
			"spreadsheetUrl": "https://docs.example.com/spreadsheets/abc123",
		})
	}))
	defer server.Close()

	sink := NewHTTPSheetSink(server.URL)
	url, err := sink.Publish(context.Background(), "test-token", []byte(`{"properties":{}}`))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com/spreadsheets/abc123", url)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"properties":{}}`, string(gotBody))
}

func TestHTTPSheetSinkPublishErrors(t *testing.T) {
	t.Run("empty endpoint", func(t *testing.T) {
		sink := NewHTTPSheetSink("")
		_, err := sink.Publish(context.Background(), "token", nil)
		assert.ErrorContains(t, err, "not configured")
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer server.Close()

		sink := NewHTTPSheetSink(server.URL)
		_, err := sink.Publish(context.Background(), "token", nil)
		assert.ErrorContains(t, err, "status 403")
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("missing url in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"spreadsheetId":"abc123"}`))
		}))
		defer server.Close()

		sink := NewHTTPSheetSink(server.URL)
		_, err := sink.Publish(context.Background(), "token", nil)
		assert.ErrorContains(t, err, "missing spreadsheetUrl")
	})
}

func TestFileAuthorizer(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"ya29.token","token_type":"Bearer"}`), 0o600))

		auth := NewFileAuthorizer(path)
		token, err := auth.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ya29.token", token)
	})

	t.Run("unconfigured", func(t *testing.T) {
		auth := NewFileAuthorizer("")
		_, err := auth.Token(context.Background())
		assert.ErrorContains(t, err, "not configured")
	})

	t.Run("missing file", func(t *testing.T) {
		auth := NewFileAuthorizer(filepath.Join(t.TempDir(), "nope.json"))
		_, err := auth.Token(context.Background())
		assert.ErrorContains(t, err, "failed to read")
	})

	t.Run("no token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"token_type":"Bearer"}`), 0o600))

		auth := NewFileAuthorizer(path)
		_, err := auth.Token(context.Background())
		assert.ErrorContains(t, err, "no access_token")
	})
}
