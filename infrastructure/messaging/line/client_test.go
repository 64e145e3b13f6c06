package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "reservation-backend/pkg/errors"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{
		TokenEndpoint: server.URL + "/oauth/accessToken",
		PushEndpoint:  server.URL + "/message/push",
		HTTPClient:    server.Client(),
	}, zap.NewNop())
	return client, server
}

func TestIssueToken(t *testing.T) {
	var gotForm map[string]string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type":    r.PostForm.Get("grant_type"),
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "issued-token",
			"expires_in":   2592000,
			"token_type":   "Bearer",
		})
	}))
	defer server.Close()

	token, err := client.IssueToken(context.Background(), "100", "secret")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "client_credentials", gotForm["grant_type"])
	assert.Equal(t, "100", gotForm["client_id"])
	assert.Equal(t, "secret", gotForm["client_secret"])
}

func TestIssueTokenNon2xx(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := client.IssueToken(context.Background(), "100", "wrong")
	require.Error(t, err)
	assert.True(t, appErrors.IsExternalAPI(err))
}

func TestIssueTokenMissingAccessToken(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer server.Close()

	_, err := client.IssueToken(context.Background(), "100", "secret")
	require.Error(t, err)
	assert.True(t, appErrors.IsExternalAPI(err))
}

func TestPushMessage(t *testing.T) {
	var gotAuth string
	var gotBody pushRequest
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	err := client.PushMessage(context.Background(), "tok", "U123", "Dinner at 7")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "U123", gotBody.To)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "text", gotBody.Messages[0].Type)
	assert.Equal(t, "Dinner at 7", gotBody.Messages[0].Text)
}

func TestPushMessageNon2xx(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid user"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	err := client.PushMessage(context.Background(), "tok", "bad-user", "hello")
	require.Error(t, err)
	assert.True(t, appErrors.IsExternalAPI(err))
}
