package sheets_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraham1744/amuthamorderapp/internal/adapters/outbound/sheets"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// testAccount builds a parseable service-account key around a fresh RSA key.
func testAccount(t *testing.T, tokenURI string) sheets.ServiceAccount {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": "orderapp@test.iam.gserviceaccount.com",
		"private_key":  string(pemKey),
		"token_uri":    tokenURI,
		"project_id":   "orderapp-test",
	})
	require.NoError(t, err)

	account, err := sheets.ParseServiceAccount(raw)
	require.NoError(t, err)
	return account
}

// tokenEndpoint is a fake OAuth token endpoint counting exchanges.
type tokenEndpoint struct {
	calls     atomic.Int64
	failFirst int32 // number of initial 500 responses before succeeding
	expiresIn int64
}

func (te *tokenEndpoint) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := te.calls.Add(1)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			http.Error(w, "bad grant type", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("assertion") == "" {
			http.Error(w, "missing assertion", http.StatusBadRequest)
			return
		}
		if n <= int64(te.failFirst) {
			http.Error(w, "try later", http.StatusInternalServerError)
			return
		}
		expires := te.expiresIn
		if expires == 0 {
			expires = 3600
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":%d,"token_type":"Bearer"}`, n, expires)
	}
}

func TestSession_TokenReusedWithinValidity(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	session, err := sheets.NewSession(testAccount(t, srv.URL))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := session.Token(ctx)
	require.NoError(t, err)
	second, err := session.Token(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, te.calls.Load(), "second call must reuse the cached token")
}

func TestSession_TokenReacquiredAfterExpiry(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{expiresIn: 3600}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	session, err := sheets.NewSession(testAccount(t, srv.URL), sheets.WithClock(func() time.Time { return clock() }))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := session.Token(ctx)
	require.NoError(t, err)

	// Still inside the validity window (1h minus the refresh skew).
	now = now.Add(30 * time.Minute)
	mid, err := session.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, mid)
	assert.EqualValues(t, 1, te.calls.Load())

	// Past expiry: one new exchange.
	now = now.Add(time.Hour)
	fresh, err := session.Token(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, fresh)
	assert.EqualValues(t, 2, te.calls.Load())
}

func TestSession_ConcurrentRefreshCollapses(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	session, err := sheets.NewSession(testAccount(t, srv.URL))
	require.NoError(t, err)

	const callers = 16
	tokens := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := session.Token(context.Background())
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, te.calls.Load(), "concurrent callers must share one exchange")
	for _, tok := range tokens {
		assert.Equal(t, tokens[0], tok)
	}
}

func TestSession_RetriesTransientExchangeFailure(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{failFirst: 2}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	session, err := sheets.NewSession(testAccount(t, srv.URL))
	require.NoError(t, err)

	tok, err := session.Token(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.EqualValues(t, 3, te.calls.Load())
}

func TestSession_RejectedExchangeIsAuthenticationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	session, err := sheets.NewSession(testAccount(t, srv.URL))
	require.NoError(t, err)

	_, err = session.Token(context.Background())
	assert.ErrorIs(t, err, ports.ErrAuthentication)
}

func TestSession_InvalidateForcesRefresh(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{}
	srv := httptest.NewServer(te.handler())
	defer srv.Close()

	session, err := sheets.NewSession(testAccount(t, srv.URL))
	require.NoError(t, err)

	_, err = session.Token(context.Background())
	require.NoError(t, err)
	session.Invalidate()
	_, err = session.Token(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, te.calls.Load())
}

func TestParseServiceAccount_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{"},
		{"missing email", `{"token_uri":"https://x","private_key":"k"}`},
		{"missing token uri", `{"client_email":"a@b","private_key":"k"}`},
		{"key not pem", `{"client_email":"a@b","token_uri":"https://x","private_key":"nope"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := sheets.ParseServiceAccount([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
