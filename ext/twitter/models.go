package twitter

// The GraphQL envelope has carried the same payload under two shapes
// over time: fields directly on the result node, or tucked under a
// "legacy" sub-object. Both are modeled here and reconciled once in
// parse.go before anything downstream reads them.

type APIResponse struct {
	Data struct {
		TweetResult struct {
			Result *TweetResult `json:"result,omitempty"`
		} `json:"tweetResult"`
	} `json:"data"`
}

type TweetResult struct {
	TypeName string `json:"__typename,omitempty"`
	RestID   string `json:"rest_id,omitempty"`

	// Tweet wraps another result node one level deeper
	// (TweetWithVisibilityResults responses).
	Tweet *TweetResult `json:"tweet,omitempty"`

	Core               *Core               `json:"core,omitempty"`
	Legacy             *Tweet              `json:"legacy,omitempty"`
	NoteTweet          *NoteTweet          `json:"note_tweet,omitempty"`
	QuotedStatusResult *QuotedStatusResult `json:"quoted_status_result,omitempty"`

	// Modern-shape duplicates of the legacy fields.
	FullText         string            `json:"full_text,omitempty"`
	IDStr            string            `json:"id_str,omitempty"`
	ExtendedEntities *ExtendedEntities `json:"extended_entities,omitempty"`
}

type QuotedStatusResult struct {
	Result *TweetResult `json:"result,omitempty"`
}

// NoteTweet holds the long-form text of posts beyond the classic
// length limit; when present it is the only field guaranteed to be
// un-truncated.
type NoteTweet struct {
	NoteTweetResults struct {
		Result struct {
			Text string `json:"text,omitempty"`
		} `json:"result"`
	} `json:"note_tweet_results"`
}

type Core struct {
	UserResults struct {
		Result *User `json:"result,omitempty"`
	} `json:"user_results"`
}

type User struct {
	TypeName   string      `json:"__typename,omitempty"`
	RestID     string      `json:"rest_id,omitempty"`
	ScreenName string      `json:"screen_name,omitempty"`
	Name       string      `json:"name,omitempty"`
	Legacy     *UserLegacy `json:"legacy,omitempty"`
}

type UserLegacy struct {
	ScreenName string `json:"screen_name"`
	Name       string `json:"name"`
}

type Tweet struct {
	FullText         string            `json:"full_text"`
	IDStr            string            `json:"id_str,omitempty"`
	ExtendedEntities *ExtendedEntities `json:"extended_entities,omitempty"`
	Entities         *ExtendedEntities `json:"entities,omitempty"`
	CreatedAt        string            `json:"created_at,omitempty"`
	ConversationID   string            `json:"conversation_id_str,omitempty"`
	Lang             string            `json:"lang,omitempty"`
}

type ExtendedEntities struct {
	Media []*MediaEntity `json:"media,omitempty"`
}

type MediaEntity struct {
	Type          string        `json:"type"`
	IDStr         string        `json:"id_str,omitempty"`
	MediaKey      string        `json:"media_key,omitempty"`
	MediaURLHTTPS string        `json:"media_url_https"`
	URL           string        `json:"url"`
	DisplayURL    string        `json:"display_url,omitempty"`
	ExpandedURL   string        `json:"expanded_url,omitempty"`
	VideoInfo     *VideoInfo    `json:"video_info,omitempty"`
	OriginalInfo  *OriginalInfo `json:"original_info,omitempty"`
}

type OriginalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type VideoInfo struct {
	DurationMillis int        `json:"duration_millis,omitempty"`
	AspectRatio    []int      `json:"aspect_ratio,omitempty"`
	Variants       []*Variant `json:"variants,omitempty"`
}

type Variant struct {
	Bitrate     int    `json:"bitrate,omitempty"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

type guestActivationResponse struct {
	GuestToken string `json:"guest_token"`
}
