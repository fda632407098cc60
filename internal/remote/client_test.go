package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/remote"
)

func newClient(t *testing.T, handler http.HandlerFunc) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := remote.NewClient(remote.Options{BaseURL: srv.URL, Token: "secret"})
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative"} {
		_, err := remote.NewClient(remote.Options{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}

func TestClient_FetchTree(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bookmark/tree", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id": "f1", "type": "folder", "title": "Work", "children": [
				{"_id": "l1", "type": "link", "title": "Docs", "url": "https://docs.example.com"}
			]}
		]`))
	})

	tree, err := c.FetchTree(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())

	l1, ok := tree.Find("l1")
	require.True(t, ok)
	assert.Equal(t, "f1", l1.Parent())
}

func TestClient_FetchTree_MalformedBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id": "a", "type": "link", "children": [{"_id": "b", "type": "link"}]}]`))
	})

	_, err := c.FetchTree(context.Background())
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestClient_CreateNode(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookmark", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft model.NodeDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, model.KindLink, draft.Kind)
		require.NotNil(t, draft.ParentID)
		assert.Equal(t, "f1", *draft.ParentID)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id":      "l9",
			"type":     draft.Kind,
			"title":    draft.Title,
			"url":      draft.URL,
			"parentId": draft.ParentID,
		})
	})

	node, err := c.CreateNode(context.Background(), model.NodeDraft{
		Kind:     model.KindLink,
		Title:    "Docs",
		URL:      "https://docs.example.com",
		ParentID: model.StringPtr("f1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "l9", node.ID)
	assert.Equal(t, "https://docs.example.com", node.URL)
}

func TestClient_CreateNode_MissingID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title": "x"}`))
	})

	_, err := c.CreateNode(context.Background(), model.NodeDraft{Kind: model.KindFolder, Title: "x"})
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestClient_UpdateAndDelete(t *testing.T) {
	var calls []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.EscapedPath())
		if r.Method == http.MethodPut {
			var patch map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			assert.Equal(t, map[string]any{"parentId": "f2"}, patch)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.UpdateNode(context.Background(), "a/b", model.NodePatch{ParentID: model.StringPtr("f2")}))
	require.NoError(t, c.DeleteNode(context.Background(), "l1"))
	assert.Equal(t, []string{"PUT /bookmark/a%2Fb", "DELETE /bookmark/l1"}, calls)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"message": "bookmark not found"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrNotFound)
				assert.Contains(t, err.Error(), "bookmark not found")
			},
		},
		{
			name:   "validation",
			status: http.StatusUnprocessableEntity,
			body:   `{"error": "title too long"}`,
			check: func(t *testing.T, err error) {
				var ve *model.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "title too long", ve.Message)
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   "nope",
			check: func(t *testing.T, err error) {
				assert.True(t, model.IsValidation(err))
			},
		},
		{
			name:   "server error is retryable",
			status: http.StatusBadGateway,
			body:   "",
			check: func(t *testing.T, err error) {
				assert.True(t, model.IsRetryable(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			tt.check(t, c.DeleteNode(context.Background(), "x"))
		})
	}
}

func TestClient_RetriesOnTooManyRequests(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteNode(context.Background(), "l1"))
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_RetryAfterIsCappedAtTimeout(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "86400")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := remote.NewClient(remote.Options{BaseURL: srv.URL, Timeout: 200 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	require.NoError(t, c.DeleteNode(ctx, "l1"))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := remote.NewClient(remote.Options{BaseURL: srv.URL, MaxRetries: 1})
	require.NoError(t, err)

	err = c.DeleteNode(context.Background(), "l1")
	assert.ErrorIs(t, err, model.ErrNetwork)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_Offline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := remote.NewClient(remote.Options{BaseURL: url})
	require.NoError(t, err)

	_, err = c.FetchTree(context.Background())
	assert.ErrorIs(t, err, model.ErrOffline)
	assert.True(t, model.IsRetryable(err))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, err := remote.NewClient(remote.Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.FetchTree(context.Background())
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchTree(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}
