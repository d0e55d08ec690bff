package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{APIURL: url, APIKey: "sk-test", Model: "gpt-test", MaxTokens: 120, Timeout: 5 * time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func TestComplete_SendsRequestAndTrims(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		assert.Equal(t, 120, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "hello", req.Messages[1].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  You light up every room.\n"}}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "You light up every room.", got)
}

func TestComplete_ProviderErrorBodyNotReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key sk-secret-123"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "hello")
	require.ErrorIs(t, err, ErrProvider)
	assert.NotContains(t, err.Error(), "sk-secret-123")
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestComplete_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := newTestClient(t, srv.URL).Complete(ctx, "hello")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{APIURL: "http://x", Model: "m"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.NoError(t, c.Validate("poetic", "romantic"))
	assert.NoError(t, c.Validate("Playful", "SWEET"))
	assert.ErrorIs(t, c.Validate("limerick", "romantic"), ErrUnknownStyle)
	assert.ErrorIs(t, c.Validate("poetic", "grumpy"), ErrUnknownTone)

	p := c.Prompt("her laugh", "poetic", "romantic", "Sam")
	assert.Contains(t, p, "romantic compliment in a poetic style")
	assert.Contains(t, p, "It is for Sam.")
	assert.Contains(t, p, "her laugh")
}

func TestLoadCatalog_Rejects(t *testing.T) {
	_, err := LoadCatalog([]byte("styles: {}\ntones: {}\n"))
	assert.Error(t, err)
	_, err = LoadCatalog([]byte(":::"))
	assert.Error(t, err)
}
