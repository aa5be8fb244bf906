package twitter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"xgallery/config"
	"xgallery/metrics"
	"xgallery/models"
	"xgallery/util"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Versioned GraphQL operation id; must be bumped when the upstream API
// starts rejecting requests.
const tweetResultQueryID = "zAz9764BcLZOJ0JU2wrd1A"

type tweetVariables struct {
	TweetID                string `json:"tweetId"`
	WithCommunity          bool   `json:"withCommunity"`
	IncludePromotedContent bool   `json:"includePromotedContent"`
	WithVoice              bool   `json:"withVoice"`
}

// tweetFeatures is the capability-flag map the endpoint demands; the
// set is opaque and versioned together with tweetResultQueryID.
type tweetFeatures struct {
	CreatorSubscriptionsTweetPreviewAPIEnabled                     bool `json:"creator_subscriptions_tweet_preview_api_enabled"`
	PremiumContentAPIReadEnabled                                   bool `json:"premium_content_api_read_enabled"`
	CommunitiesWebEnableTweetCommunityResultsFetch                 bool `json:"communities_web_enable_tweet_community_results_fetch"`
	C9sTweetAnatomyModeratorBadgeEnabled                           bool `json:"c9s_tweet_anatomy_moderator_badge_enabled"`
	ResponsiveWebGrokAnalyzeButtonFetchTrendsEnabled               bool `json:"responsive_web_grok_analyze_button_fetch_trends_enabled"`
	ResponsiveWebGrokAnalyzePostFollowupsEnabled                   bool `json:"responsive_web_grok_analyze_post_followups_enabled"`
	ResponsiveWebJetfuelFrame                                      bool `json:"responsive_web_jetfuel_frame"`
	ResponsiveWebGrokShareAttachmentEnabled                        bool `json:"responsive_web_grok_share_attachment_enabled"`
	ArticlesPreviewEnabled                                         bool `json:"articles_preview_enabled"`
	ResponsiveWebEditTweetAPIEnabled                               bool `json:"responsive_web_edit_tweet_api_enabled"`
	GraphQLIsTranslatableRwebTweetIsTranslatableEnabled            bool `json:"graphql_is_translatable_rweb_tweet_is_translatable_enabled"`
	ViewCountsEverywhereAPIEnabled                                 bool `json:"view_counts_everywhere_api_enabled"`
	LongformNotetweetsConsumptionEnabled                           bool `json:"longform_notetweets_consumption_enabled"`
	ResponsiveWebTwitterArticleTweetConsumptionEnabled             bool `json:"responsive_web_twitter_article_tweet_consumption_enabled"`
	TweetAwardsWebTippingEnabled                                   bool `json:"tweet_awards_web_tipping_enabled"`
	ResponsiveWebGrokShowGrokTranslatedPost                        bool `json:"responsive_web_grok_show_grok_translated_post"`
	ResponsiveWebGrokAnalysisButtonFromBackend                     bool `json:"responsive_web_grok_analysis_button_from_backend"`
	CreatorSubscriptionsQuoteTweetPreviewEnabled                   bool `json:"creator_subscriptions_quote_tweet_preview_enabled"`
	FreedomOfSpeechNotReachFetchEnabled                            bool `json:"freedom_of_speech_not_reach_fetch_enabled"`
	StandardizedNudgesMisinfo                                      bool `json:"standardized_nudges_misinfo"`
	TweetWithVisibilityResultsPreferGqlLimitedActionsPolicyEnabled bool `json:"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled"`
	LongformNotetweetsRichTextReadEnabled                          bool `json:"longform_notetweets_rich_text_read_enabled"`
	LongformNotetweetsInlineMediaEnabled                           bool `json:"longform_notetweets_inline_media_enabled"`
	ProfileLabelImprovementsPcfLabelInPostEnabled                  bool `json:"profile_label_improvements_pcf_label_in_post_enabled"`
	RwebTipjarConsumptionEnabled                                   bool `json:"rweb_tipjar_consumption_enabled"`
	VerifiedPhoneLabelEnabled                                      bool `json:"verified_phone_label_enabled"`
	ResponsiveWebGrokImageAnnotationEnabled                        bool `json:"responsive_web_grok_image_annotation_enabled"`
	ResponsiveWebGraphQLSkipUserProfileImageExtensionsEnabled      bool `json:"responsive_web_graphql_skip_user_profile_image_extensions_enabled"`
	ResponsiveWebGraphQLTimelineNavigationEnabled                  bool `json:"responsive_web_graphql_timeline_navigation_enabled"`
	ResponsiveWebEnhanceCardsEnabled                               bool `json:"responsive_web_enhance_cards_enabled"`
}

type tweetFieldToggles struct {
	WithArticleRichContentState bool `json:"withArticleRichContentState"`
	WithArticlePlainText        bool `json:"withArticlePlainText"`
	WithGrokAnalyze             bool `json:"withGrokAnalyze"`
	WithDisallowedReplyControls bool `json:"withDisallowedReplyControls"`
}

func defaultFeatures() *tweetFeatures {
	return &tweetFeatures{
		CreatorSubscriptionsTweetPreviewAPIEnabled:                     true,
		CommunitiesWebEnableTweetCommunityResultsFetch:                 true,
		C9sTweetAnatomyModeratorBadgeEnabled:                           true,
		ResponsiveWebGrokShareAttachmentEnabled:                        true,
		ArticlesPreviewEnabled:                                         true,
		ResponsiveWebEditTweetAPIEnabled:                               true,
		GraphQLIsTranslatableRwebTweetIsTranslatableEnabled:            true,
		ViewCountsEverywhereAPIEnabled:                                 true,
		LongformNotetweetsConsumptionEnabled:                           true,
		ResponsiveWebTwitterArticleTweetConsumptionEnabled:             true,
		FreedomOfSpeechNotReachFetchEnabled:                            true,
		StandardizedNudgesMisinfo:                                      true,
		TweetWithVisibilityResultsPreferGqlLimitedActionsPolicyEnabled: true,
		LongformNotetweetsRichTextReadEnabled:                          true,
		LongformNotetweetsInlineMediaEnabled:                           true,
		ProfileLabelImprovementsPcfLabelInPostEnabled:                  true,
		RwebTipjarConsumptionEnabled:                                   true,
		ResponsiveWebGrokImageAnnotationEnabled:                        true,
		ResponsiveWebGraphQLTimelineNavigationEnabled:                  true,
	}
}

// APIClient executes authenticated TweetResultByRestId lookups with a
// bounded response cache in front. One instance per session; no global
// state is shared between instances.
type APIClient struct {
	client  models.HTTPClient
	tokens  *TokenProvider
	cache   *requestCache
	limiter *rate.Limiter

	hostname string
	// baseURL overrides the endpoint origin; used by tests.
	baseURL string
}

func NewAPIClient(client models.HTTPClient, tokens *TokenProvider) *APIClient {
	return &APIClient{
		client:   client,
		tokens:   tokens,
		cache:    newRequestCache(requestCacheSize),
		limiter:  rate.NewLimiter(rate.Limit(config.Env.RequestRate), config.Env.RequestBurst),
		hostname: config.Env.APIHostname,
	}
}

func (c *APIClient) endpointURL(tweetID string) string {
	variables, _ := sonic.Marshal(&tweetVariables{TweetID: tweetID})
	features, _ := sonic.Marshal(defaultFeatures())
	fieldToggles, _ := sonic.Marshal(&tweetFieldToggles{WithArticleRichContentState: true})

	query := url.Values{}
	query.Set("variables", string(variables))
	query.Set("features", string(features))
	query.Set("fieldToggles", string(fieldToggles))

	base := c.baseURL
	if base == "" {
		base = fmt.Sprintf(
			"https://%s/i/api/graphql/%s/TweetResultByRestId",
			c.hostname, tweetResultQueryID,
		)
	}
	return base + "?" + query.Encode()
}

// TweetResultByRestID fetches the tweet envelope for one post id.
// Transport failures and non-OK statuses are returned as errors and
// never cached; an OK response carrying an application-level errors[]
// payload is logged and used as-is, since partial data is common.
func (c *APIClient) TweetResultByRestID(ctx context.Context, tweetID string) (*APIResponse, error) {
	reqURL := c.endpointURL(tweetID)

	if cached, ok := c.cache.get(reqURL); ok {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.tokens.EnsureGuestToken(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.buildHeaders() {
		req.Header.Set(key, value)
	}
	// The csrf header is only honored when the matching ct0 cookie
	// rides along with it.
	for _, cookie := range c.tokens.RequestCookies() {
		req.AddCookie(cookie)
	}

	client := c.client
	if client == nil {
		client = util.GetDefaultHTTPClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.APIRequests.WithLabelValues("transport_error").Inc()
		zap.S().Errorf("tweet request failed: %v", err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.APIRequests.WithLabelValues("http_error").Inc()
		zap.S().Errorf("tweet request returned %s", resp.Status)
		return nil, fmt.Errorf("invalid response code: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	zap.S().Debugf("tweet response body: %s", body)
	logSoftErrors(body)

	var apiResponse APIResponse
	if err := sonic.ConfigFastest.Unmarshal(body, &apiResponse); err != nil {
		metrics.APIRequests.WithLabelValues("decode_error").Inc()
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	reconcileResponse(&apiResponse)

	metrics.APIRequests.WithLabelValues("ok").Inc()
	c.cache.put(reqURL, &apiResponse)
	return &apiResponse, nil
}

func (c *APIClient) buildHeaders() map[string]string {
	headers := map[string]string{
		"authorization":             bearerToken,
		"user-agent":                util.ChromeUA,
		"x-csrf-token":              c.tokens.CsrfToken(),
		"x-twitter-client-language": "en",
		"x-twitter-active-user":     "yes",
		"content-type":              "application/json",
	}
	if guestToken := c.tokens.GuestToken(); guestToken != "" {
		headers["x-guest-token"] = guestToken
	} else {
		headers["x-twitter-auth-type"] = "OAuth2Session"
	}
	if c.hostname != "" {
		headers["referer"] = "https://" + c.hostname + "/"
		headers["origin"] = "https://" + c.hostname
	}
	return headers
}

// An HTTP 200 body may still carry an errors[] array next to partial
// data; surfacing it is enough, aborting would drop usable media.
func logSoftErrors(body []byte) {
	softErrors := gjson.GetBytes(body, "errors")
	if !softErrors.Exists() {
		return
	}
	for _, softError := range softErrors.Array() {
		zap.S().Warnf("api returned soft error: %s", softError.Get("message").String())
	}
}
