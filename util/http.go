package util

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"xgallery/models"
)

const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"

var (
	defaultClient     *http.Client
	defaultClientOnce sync.Once
)

func GetDefaultHTTPClient() *http.Client {
	defaultClientOnce.Do(func() {
		defaultClient = &http.Client{
			Transport: GetBaseTransport(),
			Timeout:   60 * time.Second,
		}
	})
	return defaultClient
}

func GetBaseTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		ResponseHeaderTimeout: 10 * time.Second,
	}
}

// NewClientFromConfig builds an HTTP client honoring a per-extractor
// proxy configuration, falling back to the shared default client.
func NewClientFromConfig(cfg *models.ExtractorConfig) *http.Client {
	if cfg == nil || (cfg.HTTPProxy == "" && cfg.HTTPSProxy == "") {
		return GetDefaultHTTPClient()
	}
	transport := GetBaseTransport()
	configureProxyTransport(transport, cfg)
	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

func configureProxyTransport(transport *http.Transport, cfg *models.ExtractorConfig) {
	httpProxyURL, _ := url.Parse(cfg.HTTPProxy)
	httpsProxyURL, _ := url.Parse(cfg.HTTPSProxy)
	var noProxyHosts []string
	for _, host := range strings.Split(cfg.NoProxy, ",") {
		if trimmed := strings.TrimSpace(host); trimmed != "" {
			noProxyHosts = append(noProxyHosts, trimmed)
		}
	}
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		for _, host := range noProxyHosts {
			if strings.HasSuffix(req.URL.Hostname(), host) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && httpsProxyURL != nil && httpsProxyURL.Host != "" {
			return httpsProxyURL, nil
		}
		if httpProxyURL != nil && httpProxyURL.Host != "" {
			return httpProxyURL, nil
		}
		return http.ProxyFromEnvironment(req)
	}
}

func FetchPage(
	client models.HTTPClient,
	method string,
	rawURL string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie,
) (*http.Response, error) {
	if client == nil {
		client = GetDefaultHTTPClient()
	}
	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ChromeUA)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
