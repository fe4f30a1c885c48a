package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	jose "github.com/go-jose/go-jose/v4"
	"golang.org/x/sync/singleflight"

	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// Scope is the OAuth scope requested for every token.
const Scope = "https://www.googleapis.com/auth/spreadsheets"

// assertionLifetime is the validity window claimed in the signed assertion.
const assertionLifetime = time.Hour

// expirySkew is subtracted from the token's stated lifetime so a token is
// refreshed before the remote side considers it expired.
const expirySkew = time.Minute

// Session owns the bearer credential for one adapter instance. The token is
// cached until shortly before its stated expiry; concurrent callers near
// expiry share a single in-flight exchange instead of issuing duplicates.
type Session struct {
	account    ServiceAccount
	tokenURL   string
	httpClient *http.Client
	now        func() time.Time

	mu     sync.Mutex
	group  singleflight.Group
	token  string
	expiry time.Time
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithTokenEndpoint overrides the token URI from the credentials file.
func WithTokenEndpoint(u string) SessionOption {
	return func(s *Session) {
		if u != "" {
			s.tokenURL = u
		}
	}
}

// WithSessionHTTPClient sets the HTTP client used for the exchange.
func WithSessionHTTPClient(c *http.Client) SessionOption {
	return func(s *Session) { s.httpClient = c }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session bound to the service account identity.
func NewSession(account ServiceAccount, opts ...SessionOption) (*Session, error) {
	if account.Key() == nil {
		return nil, fmt.Errorf("service account has no signing key")
	}
	s := &Session{
		account:    account,
		tokenURL:   account.TokenURI,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Token returns a bearer token, reusing the cached one while it remains
// inside its validity window and otherwise performing one exchange shared by
// all concurrent callers.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" && s.now().Before(s.expiry) {
		tok := s.token
		s.mu.Unlock()
		return tok, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("token", func() (any, error) {
		// Re-check: a refresh that finished while we queued is still fresh.
		s.mu.Lock()
		if s.token != "" && s.now().Before(s.expiry) {
			tok := s.token
			s.mu.Unlock()
			return tok, nil
		}
		s.mu.Unlock()
		return s.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call re-acquires one.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
}

func (s *Session) refresh(ctx context.Context) (string, error) {
	assertion, err := s.signAssertion()
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}

	var resp tokenResponse
	op := func() error {
		r, err := s.exchange(ctx, assertion)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}

	s.mu.Lock()
	s.token = resp.AccessToken
	s.expiry = s.now().Add(time.Duration(resp.ExpiresIn)*time.Second - expirySkew)
	s.mu.Unlock()
	return resp.AccessToken, nil
}

type tokenClaims struct {
	Issuer   string `json:"iss"`
	Scope    string `json:"scope"`
	Audience string `json:"aud"`
	Expiry   int64  `json:"exp"`
	IssuedAt int64  `json:"iat"`
}

func (s *Session) signAssertion() (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: s.account.Key()},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	now := s.now().Unix()
	claims := tokenClaims{
		Issuer:   s.account.ClientEmail,
		Scope:    Scope,
		Audience: s.tokenURL,
		Expiry:   now + int64(assertionLifetime.Seconds()),
		IssuedAt: now,
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	obj, err := signer.Sign(payload)
	if err != nil {
		return "", err
	}
	return obj.CompactSerialize()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (s *Session) exchange(ctx context.Context, assertion string) (tokenResponse, error) {
	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, backoff.Permanent(fmt.Errorf("%w: %v", ports.ErrAuthentication, err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Network errors are retryable.
		return tokenResponse{}, fmt.Errorf("%w: %v", ports.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return tokenResponse{}, fmt.Errorf("%w: token endpoint returned %d", ports.ErrAuthentication, resp.StatusCode)
	default:
		// 4xx other than 429 will not improve on retry.
		return tokenResponse{}, backoff.Permanent(
			fmt.Errorf("%w: token endpoint returned %d: %s", ports.ErrAuthentication, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return tokenResponse{}, backoff.Permanent(fmt.Errorf("%w: malformed token response: %v", ports.ErrAuthentication, err))
	}
	if tr.AccessToken == "" {
		return tokenResponse{}, backoff.Permanent(fmt.Errorf("%w: token response missing access_token", ports.ErrAuthentication))
	}
	return tr, nil
}
