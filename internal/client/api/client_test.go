package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SessionStore {
	t.Helper()
	return NewSessionStore(filepath.Join(t.TempDir(), "session"))
}

func TestLogin_PersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth", r.URL.Path)

		var req authRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		assert.True(t, req.IsLogin)

		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "tok-123", MaxAge: 86400})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	store := newStore(t)
	c, err := NewClient(srv.URL, store)
	require.NoError(t, err)
	require.False(t, c.HasSession())

	require.NoError(t, c.Login(context.Background(), "alice@example.com", "Str0ng!Pass"))
	assert.True(t, c.HasSession())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", saved)

	// A fresh client picks up the persisted session.
	c2, err := NewClient(srv.URL, store)
	require.NoError(t, err)
	assert.True(t, c2.HasSession())
}

func TestRequests_CarrySessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "tok-123", cookie.Value)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"i1","name":"n","type":"text","size":"0 KB","dateAdded":"2026-01-02T03:04:05.000Z"}]`))
	}))
	defer srv.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok-123"))
	c, err := NewClient(srv.URL, store)
	require.NoError(t, err)

	items, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "i1", items[0].ID)
	assert.Equal(t, "text", items[0].Type)
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"Unauthorized"}`, ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"error":"Item not found"}`, ErrNotFound},
		{"validation", http.StatusBadRequest, `{"error":"File too large"}`, ErrBadRequest},
		{"server error", http.StatusInternalServerError, `{"error":"Failed to decrypt item"}`, ErrServer},
		{"non-json body", http.StatusBadGateway, `upstream fell over`, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient(srv.URL, newStore(t))
			require.NoError(t, err)

			_, err = c.Fetch(context.Background(), "i1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", MaxAge: -1})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok-123"))
	c, err := NewClient(srv.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.HasSession())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestCreate_ReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text", req.Type)
		assert.Equal(t, "secret note", req.Content)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"id":"new-id"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, newStore(t))
	require.NoError(t, err)

	id, err := c.Create(context.Background(), CreateItemRequest{Type: "text", Content: "secret note", Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
}

func TestSessionStore(t *testing.T) {
	store := newStore(t)

	// Empty before anything is saved.
	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Save("tok-123"))
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, store.Clear())
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
