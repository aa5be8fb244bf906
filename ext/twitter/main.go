package twitter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"

	"xgallery/config"
	"xgallery/enums"
	"xgallery/metrics"
	"xgallery/models"
	"xgallery/util"

	"go.uber.org/zap"
)

var (
	defaultClient     *APIClient
	defaultClientOnce sync.Once
)

// DefaultClient lazily builds the shared session client: cookie jar
// from the configured file (fail-soft when absent), per-extractor
// proxy settings, one token provider and cache per process.
func DefaultClient() *APIClient {
	defaultClientOnce.Do(func() {
		jar := util.NewCookieJar(config.Env.CookiesFile)
		if err := jar.Load(); err != nil {
			// Degraded auth only; resolution proceeds without cookies.
			zap.S().Debugf("cookie jar unavailable: %v", err)
		}
		httpClient := util.NewClientFromConfig(config.GetExtractorConfig("twitter"))
		defaultClient = NewAPIClient(httpClient, NewTokenProvider(jar, httpClient))
	})
	return defaultClient
}

var ShortExtractor = &models.Extractor{
	Name:       "Twitter (Short)",
	CodeName:   "twitter",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategorySocial,
	URLPattern: regexp.MustCompile(`https?://t\.co/(?P<id>\w+)`),
	Host:       []string{"t"},
	IsRedirect: true,
	IsHidden:   true,

	Run: func(ctx *models.ResolveContext) (*models.ExtractorResponse, error) {
		resp, err := util.FetchPage(
			util.GetDefaultHTTPClient(),
			http.MethodGet,
			ctx.MatchedContentURL,
			nil,
			nil,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		matchedURL := Extractor.URLPattern.FindSubmatch(body)
		if matchedURL == nil {
			return nil, ErrURLNotFound
		}
		return &models.ExtractorResponse{
			URL: string(matchedURL[0]),
		}, nil
	},
}

var Extractor = &models.Extractor{
	Name:       "Twitter",
	CodeName:   "twitter",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategorySocial,
	URLPattern: regexp.MustCompile(`https?://(?:fx|vx|fixup)?(twitter|x)\.com/([^/]+)/status/(?P<id>\d+)`),
	Host: []string{
		"x",
		"twitter",
		"fxtwitter",
		"vxtwitter",
		"fixuptwitter",
		"fixupx",
	},

	Run: func(ctx *models.ResolveContext) (*models.ExtractorResponse, error) {
		mediaList, err := GetTweetMedia(ctx.Context, DefaultClient(), ctx.MatchedGroups["id"])
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

// GetTweetMedia resolves the full, visually ordered media set of one
// post, including media nested in a quoted post. A post that is
// deleted, text-only, or has no resolvable author yields an empty
// list, not an error; only transport-level failures propagate.
func GetTweetMedia(
	ctx context.Context,
	client *APIClient,
	tweetID string,
) ([]*models.MediaEntry, error) {
	resp, err := client.TweetResultByRestID(ctx, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet data: %w", err)
	}

	// The envelope is reconciled once at decode time and may be served
	// from the cache to concurrent callers; nothing below writes to it.
	result := resp.Data.TweetResult.Result
	if result == nil {
		return nil, nil
	}

	user := resolveUser(result)
	if user == nil {
		return nil, nil
	}

	entries := sortByVisualOrder(extractMedia(result, user, enums.SourceLocationOriginal))

	if quoted := result.QuotedStatusResult; quoted != nil && quoted.Result != nil {
		if quotedUser := resolveUser(quoted.Result); quotedUser != nil {
			quotedEntries := sortByVisualOrder(
				extractMedia(quoted.Result, quotedUser, enums.SourceLocationQuoted),
			)
			if len(quotedEntries) > 0 {
				// Quoted media occupies the low indices by convention;
				// the original post's entries shift up behind it.
				for _, entry := range entries {
					entry.Index += len(quotedEntries)
				}
				entries = append(quotedEntries, entries...)
			}
		}
	}

	for _, entry := range entries {
		metrics.MediaResolved.WithLabelValues(string(entry.Type)).Inc()
	}
	return entries, nil
}

func resolveUser(result *TweetResult) *User {
	if result.Core == nil {
		return nil
	}
	return result.Core.UserResults.Result
}
