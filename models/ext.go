package models

import (
	"context"
	"regexp"

	"xgallery/enums"
)

type Extractor struct {
	Name       string
	CodeName   string
	Type       enums.ExtractorType
	Category   enums.ExtractorCategory
	URLPattern *regexp.Regexp
	Host       []string
	IsRedirect bool
	IsHidden   bool

	Run func(*ResolveContext) (*ExtractorResponse, error)
}

type ExtractorResponse struct {
	MediaList []*MediaEntry
	URL       string // redirected URL
}

// ResolveContext carries one resolution request through an extractor.
type ResolveContext struct {
	Context           context.Context
	Extractor         *Extractor
	MatchedContentID  string
	MatchedContentURL string
	MatchedGroups     map[string]string
}
