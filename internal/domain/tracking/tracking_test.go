package tracking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPixel_Track(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lead", r.URL.Query().Get("ev"))
		assert.Equal(t, "42", r.URL.Query().Get("sid"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := NewPixel(srv.URL, time.Second)
	assert.NoError(t, p.Track(context.Background(), Conversion{SubmissionID: "42"}))
}

func TestPixel_TrackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPixel(srv.URL, time.Second)
	assert.Error(t, p.Track(context.Background(), Conversion{SubmissionID: "42"}))
}
