package models

import (
	"xgallery/enums"
)

// MediaEntry is one renderable asset resolved from a post. Entries are
// built once per resolution call and never mutated afterwards; they
// carry no reference to network or cache state.
type MediaEntry struct {
	TweetID    string `json:"tweet_id"`
	ScreenName string `json:"screen_name"`

	// DownloadURL is the best-quality fetchable URL and is never empty:
	// media without a resolvable URL is dropped during extraction.
	DownloadURL string `json:"download_url"`
	// PreviewURL is the thumbnail exactly as supplied by the API.
	PreviewURL string `json:"preview_url"`

	Type enums.MediaType `json:"type"`
	// TypeOriginal keeps the literal API type; animated_gif is
	// normalized to video in Type but preserved here.
	TypeOriginal string `json:"type_original"`

	// Index is the final 0-based position within the resolved gallery,
	// after visual-order correction and quote-post merging.
	Index             int `json:"index"`
	TypeIndex         int `json:"type_index"`
	TypeIndexOriginal int `json:"type_index_original"`

	Width       int   `json:"width,omitempty"`
	Height      int   `json:"height,omitempty"`
	AspectRatio []int `json:"aspect_ratio,omitempty"`

	SourceLocation enums.SourceLocation `json:"source_location"`

	// TweetText is the post text with this media's inline short URL
	// stripped out.
	TweetText string `json:"tweet_text"`

	MediaID     string `json:"media_id"`
	MediaKey    string `json:"media_key,omitempty"`
	ExpandedURL string `json:"expanded_url,omitempty"`
	ShortURL    string `json:"short_url,omitempty"`
}

func (entry *MediaEntry) IsVideo() bool {
	return entry.Type == enums.MediaTypeVideo
}

func (entry *MediaEntry) IsQuoted() bool {
	return entry.SourceLocation == enums.SourceLocationQuoted
}
