package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyServer(t *testing.T, success bool, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "shh", r.PostForm.Get("secret"))
		w.Header().Set("Content-Type", "application/json")
		if success {
			_, _ = w.Write([]byte(`{"success":true,"score":0.9}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
}

func TestRecaptcha_Verify(t *testing.T) {
	var calls int32
	srv := verifyServer(t, true, &calls)
	defer srv.Close()

	v := NewRecaptcha(srv.URL, "shh", time.Second)
	assert.NoError(t, v.Verify(context.Background(), "token", "1.2.3.4"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRecaptcha_Rejected(t *testing.T) {
	var calls int32
	srv := verifyServer(t, false, &calls)
	defer srv.Close()

	v := NewRecaptcha(srv.URL, "shh", time.Second)
	assert.ErrorIs(t, v.Verify(context.Background(), "token", ""), ErrVerificationFailed)
}

func TestRecaptcha_SkipAndEmpty(t *testing.T) {
	var calls int32
	srv := verifyServer(t, true, &calls)
	defer srv.Close()

	v := NewRecaptcha(srv.URL, "shh", time.Second)
	assert.NoError(t, v.Verify(context.Background(), SkipToken, ""))
	assert.ErrorIs(t, v.Verify(context.Background(), "", ""), ErrVerificationFailed)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
