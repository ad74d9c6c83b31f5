package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJotformStore_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/form/F1/submissions", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("apiKey"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Jane", r.PostForm.Get("submission[5]"))
		assert.Equal(t, "", r.PostForm.Get("submission[16]"))
		assert.Equal(t, "hero", r.PostForm.Get("submission[18]"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseCode": 200,
			"message":      "success",
			"content":      map[string]any{"submissionID": "6012345678"},
		})
	}))
	defer srv.Close()

	store := NewJotformStore(srv.URL, "k", "F1", 5*time.Second)
	id, err := store.Create(context.Background(), &Lead{Name: "Jane", Email: "j@example.com", Phone: "(657) 888-0026", Source: "hero"})
	require.NoError(t, err)
	assert.Equal(t, "6012345678", id)
}

func TestJotformStore_CreateUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"responseCode":401,"message":"You're not authorized to use (/form-id/submissions) "}`))
	}))
	defer srv.Close()

	store := NewJotformStore(srv.URL, "bad", "F1", 5*time.Second)
	_, err := store.Create(context.Background(), &Lead{Name: "Jane"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestJotformStore_GetParsesAnswerShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submission/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"responseCode": 200,
			"content": {
				"id": "42",
				"created_at": "2025-03-01 10:00:00",
				"answers": {
					"5":  {"answer": {"first": "Jane", "last": "Doe"}, "prettyFormat": "Jane Doe"},
					"6":  {"answer": "jane@example.com"},
					"16": {"answer": {"text": "Kitchen"}},
					"17": {"prettyFormat": "$25k - $50k"},
					"20": {"answer": "quartz counters"}
				}
			}
		}`))
	}))
	defer srv.Close()

	store := NewJotformStore(srv.URL, "k", "F1", 5*time.Second)
	lead, err := store.Get(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "jane@example.com", lead.Email)
	assert.Equal(t, "Kitchen", lead.Project)
	assert.Equal(t, "$25k - $50k", lead.Budget)
	assert.Equal(t, "quartz counters", lead.Notes)
	assert.Equal(t, 2025, lead.CreatedAt.Year())
}

func TestJotformStore_GetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"responseCode":404,"message":"Submission not found"}`))
	}))
	defer srv.Close()

	store := NewJotformStore(srv.URL, "k", "F1", 5*time.Second)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestJotformStore_SaveNotes(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = r.PostForm.Get("submission[20]")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responseCode":200,"message":"success","content":{}}`))
	}))
	defer srv.Close()

	store := NewJotformStore(srv.URL, "k", "F1", 5*time.Second)
	require.NoError(t, store.SaveNotes(context.Background(), "42", "N"))
	assert.Equal(t, "N", got)
}
