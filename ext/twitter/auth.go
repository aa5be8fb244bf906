package twitter

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"xgallery/models"
	"xgallery/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Guest/suspended-session bearer constant required on every API call.
const bearerToken = "Bearer AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4" +
	"puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

const defaultActivationURL = "https://api.twitter.com/1.1/guest/activate.json"

// CookieStore is the cookie accessor contract the token provider
// consumes; util.CookieJar satisfies it.
type CookieStore interface {
	Value(name string) string
	Cookies() []*http.Cookie
	Reload() error
}

// TokenProvider caches the CSRF token (ct0) and, for sessions without
// login cookies, a guest token (gt). Token state is last-write-wins:
// refreshes only ever append newer values, so concurrent readers need
// no ordering beyond the mutex.
type TokenProvider struct {
	store  CookieStore
	client models.HTTPClient

	activationURL string

	mu          sync.RWMutex
	csrfToken   string
	guestToken  string
	initialized bool

	refreshing atomic.Bool
}

func NewTokenProvider(store CookieStore, client models.HTTPClient) *TokenProvider {
	return &TokenProvider{
		store:         store,
		client:        client,
		activationURL: defaultActivationURL,
	}
}

// CsrfToken returns the cached CSRF token, reading the cookie store
// synchronously on first use. Later calls return the cached value and
// trigger a non-blocking re-read that updates it in place.
func (provider *TokenProvider) CsrfToken() string {
	provider.mu.RLock()
	if provider.initialized {
		token := provider.csrfToken
		provider.mu.RUnlock()
		provider.refreshAsync()
		return token
	}
	provider.mu.RUnlock()

	provider.initialize()

	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.csrfToken
}

// RequestCookies returns the session cookies to attach to API calls.
func (provider *TokenProvider) RequestCookies() []*http.Cookie {
	if provider.store == nil {
		return nil
	}
	return provider.store.Cookies()
}

func (provider *TokenProvider) GuestToken() string {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.guestToken
}

// Reset drops all cached token state; the next call re-reads cookies.
func (provider *TokenProvider) Reset() {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	provider.csrfToken = ""
	provider.guestToken = ""
	provider.initialized = false
}

func (provider *TokenProvider) initialize() {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	if provider.initialized {
		return
	}
	provider.readCookiesLocked()
	provider.initialized = true
}

func (provider *TokenProvider) readCookiesLocked() {
	if provider.store == nil {
		return
	}
	if value := provider.store.Value("ct0"); value != "" {
		provider.csrfToken = value
	}
	if value := provider.store.Value("gt"); value != "" {
		provider.guestToken = value
	}
}

func (provider *TokenProvider) refreshAsync() {
	if provider.store == nil {
		return
	}
	if !provider.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer provider.refreshing.Store(false)
		if err := provider.store.Reload(); err != nil {
			zap.S().Debugf("cookie refresh failed: %v", err)
			return
		}
		provider.mu.Lock()
		provider.readCookiesLocked()
		provider.mu.Unlock()
	}()
}

// EnsureGuestToken requests a guest token from the activation endpoint
// when neither the cache nor the cookie store holds one. Every failure
// path is fail-soft: the request proceeds with degraded headers and
// the caller never sees an error.
func (provider *TokenProvider) EnsureGuestToken(ctx context.Context) {
	provider.mu.RLock()
	hasToken := provider.guestToken != ""
	initialized := provider.initialized
	provider.mu.RUnlock()
	if hasToken {
		return
	}
	if !initialized {
		provider.initialize()
		provider.mu.RLock()
		hasToken = provider.guestToken != ""
		provider.mu.RUnlock()
		if hasToken {
			return
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.activationURL, nil)
	if err != nil {
		zap.S().Debugf("failed to create activation request: %v", err)
		return
	}
	req.Header.Set("authorization", bearerToken)
	req.Header.Set("content-type", "application/json")

	client := provider.client
	if client == nil {
		client = util.GetDefaultHTTPClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		zap.S().Warnf("guest token activation failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		zap.S().Warnf("guest token activation returned %s", resp.Status)
		return
	}
	var activation guestActivationResponse
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&activation); err != nil {
		zap.S().Warnf("failed to parse activation response: %v", err)
		return
	}
	if activation.GuestToken == "" {
		return
	}
	provider.mu.Lock()
	provider.guestToken = activation.GuestToken
	provider.mu.Unlock()
}
