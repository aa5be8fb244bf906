package util

import (
	"net/http"
	"os"
	"sync"

	"github.com/aki237/nscjar"
	"github.com/pkg/errors"
)

// CookieJar reads a Netscape-format cookie file and serves cookie
// values by name. Value is safe for concurrent use with Reload.
type CookieJar struct {
	mu      sync.RWMutex
	path    string
	cookies []*http.Cookie
}

func NewCookieJar(path string) *CookieJar {
	return &CookieJar{path: path}
}

func (jar *CookieJar) Load() error {
	file, err := os.Open(jar.path)
	if err != nil {
		return errors.Wrap(err, "failed to open cookie file")
	}
	defer file.Close()

	var parser nscjar.Parser
	cookies, err := parser.Unmarshal(file)
	if err != nil {
		return errors.Wrap(err, "failed to parse cookie file")
	}
	jar.mu.Lock()
	jar.cookies = cookies
	jar.mu.Unlock()
	return nil
}

// Reload re-reads the backing file so externally refreshed session
// cookies become visible without restarting the process.
func (jar *CookieJar) Reload() error {
	return jar.Load()
}

func (jar *CookieJar) Value(name string) string {
	jar.mu.RLock()
	defer jar.mu.RUnlock()
	for _, cookie := range jar.cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func (jar *CookieJar) Cookies() []*http.Cookie {
	jar.mu.RLock()
	defer jar.mu.RUnlock()
	out := make([]*http.Cookie, len(jar.cookies))
	copy(out, jar.cookies)
	return out
}
