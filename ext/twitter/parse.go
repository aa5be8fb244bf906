package twitter

import (
	"regexp"
	"strconv"
	"strings"

	"xgallery/enums"
	"xgallery/models"

	"go.uber.org/zap"
)

const (
	mediaTypePhoto       = "photo"
	mediaTypeVideo       = "video"
	mediaTypeAnimatedGIF = "animated_gif"

	contentTypeMP4 = "video/mp4"
)

var (
	resolutionPattern  = regexp.MustCompile(`/(\d{2,6})x(\d{2,6})(?:/|\.|$)`)
	photoFormatPattern = regexp.MustCompile(`\.(jpg|png)$`)
)

// reconcileTweet collapses the two historical response shapes into one
// canonical node: the nested result wrapper is unwrapped, missing
// modern fields are copied up from legacy, and note-tweet text always
// wins because it is the only un-truncated text source.
func reconcileTweet(result *TweetResult) *TweetResult {
	if result.Tweet != nil {
		result = result.Tweet
	}
	if legacy := result.Legacy; legacy != nil {
		if result.ExtendedEntities == nil {
			result.ExtendedEntities = legacy.ExtendedEntities
		}
		if result.FullText == "" {
			result.FullText = legacy.FullText
		}
		if result.IDStr == "" {
			result.IDStr = legacy.IDStr
		}
	}
	if note := result.NoteTweet; note != nil && note.NoteTweetResults.Result.Text != "" {
		result.FullText = note.NoteTweetResults.Result.Text
	}
	return result
}

func reconcileUser(user *User) {
	if legacy := user.Legacy; legacy != nil {
		if user.ScreenName == "" {
			user.ScreenName = legacy.ScreenName
		}
		if user.Name == "" {
			user.Name = legacy.Name
		}
	}
}

// reconcileResponse normalizes every tweet and user node of a freshly
// decoded envelope. Runs exactly once, before the envelope enters the
// response cache; after that the envelope is shared between callers
// and must stay read-only.
func reconcileResponse(resp *APIResponse) {
	result := resp.Data.TweetResult.Result
	if result == nil {
		return
	}
	result = reconcileTweet(result)
	resp.Data.TweetResult.Result = result
	if user := resolveUser(result); user != nil {
		reconcileUser(user)
	}
	if quoted := result.QuotedStatusResult; quoted != nil && quoted.Result != nil {
		quoted.Result = reconcileTweet(quoted.Result)
		if user := resolveUser(quoted.Result); user != nil {
			reconcileUser(user)
		}
	}
}

// extractMedia converts the raw media collection of one reconciled
// tweet node into normalized entries. A malformed or unresolvable
// media object is skipped, never aborting its siblings.
func extractMedia(
	tweet *TweetResult,
	user *User,
	source enums.SourceLocation,
) []*models.MediaEntry {
	if tweet.ExtendedEntities == nil || len(tweet.ExtendedEntities.Media) == 0 {
		return nil
	}

	tweetID := tweet.RestID
	if tweetID == "" {
		tweetID = tweet.IDStr
	}

	entries := make([]*models.MediaEntry, 0, len(tweet.ExtendedEntities.Media))
	seenByType := make(map[string]int)

	for position, media := range tweet.ExtendedEntities.Media {
		if media == nil || media.Type == "" || media.IDStr == "" || media.MediaURLHTTPS == "" {
			zap.S().Debugf("skipping malformed media entry at position %d", position)
			continue
		}

		downloadURL := resolveBestURL(media)
		if downloadURL == "" {
			zap.S().Warnf("no downloadable variant for media %s", media.IDStr)
			continue
		}

		mediaType := media.Type
		if mediaType == mediaTypeAnimatedGIF {
			mediaType = mediaTypeVideo
		}
		typeIndex := 0
		if seen, ok := seenByType[mediaType]; ok {
			typeIndex = seen + 1
		}
		seenByType[mediaType] = typeIndex
		// For animated gifs the literal-type counter never advances, so
		// their original index stays 0; photos and videos share one key
		// with the normalized counter.
		typeIndexOriginal := seenByType[media.Type]

		tweetText := tweet.FullText
		if media.URL != "" {
			tweetText = strings.Replace(tweetText, " "+media.URL, "", 1)
		}
		tweetText = strings.TrimSpace(tweetText)

		width, height := resolveDimensions(media, downloadURL)

		entry := &models.MediaEntry{
			TweetID:           tweetID,
			ScreenName:        user.ScreenName,
			DownloadURL:       downloadURL,
			PreviewURL:        media.MediaURLHTTPS,
			Type:              enums.MediaType(mediaType),
			TypeOriginal:      media.Type,
			Index:             position,
			TypeIndex:         typeIndex,
			TypeIndexOriginal: typeIndexOriginal,
			Width:             width,
			Height:            height,
			AspectRatio:       resolveAspectRatio(media, width, height),
			SourceLocation:    source,
			TweetText:         tweetText,
			MediaID:           media.IDStr,
			MediaKey:          media.MediaKey,
			ExpandedURL:       media.ExpandedURL,
			ShortURL:          media.URL,
		}
		entries = append(entries, entry)
	}
	return entries
}

// resolveBestURL picks the highest-quality fetchable URL for one media
// object, or "" when none is resolvable. Photos keep an existing
// format query untouched; otherwise the original-resolution variant is
// requested. Videos and animated gifs only ever resolve to the
// highest-bitrate MP4 variant, first-seen winning ties.
func resolveBestURL(media *MediaEntity) string {
	switch media.Type {
	case mediaTypePhoto:
		if strings.Contains(media.MediaURLHTTPS, "?format=") {
			return media.MediaURLHTTPS
		}
		return photoFormatPattern.ReplaceAllString(media.MediaURLHTTPS, "?format=$1&name=orig")
	case mediaTypeVideo, mediaTypeAnimatedGIF:
		if media.VideoInfo == nil {
			return ""
		}
		var best *Variant
		for _, variant := range media.VideoInfo.Variants {
			if variant == nil || variant.ContentType != contentTypeMP4 {
				continue
			}
			if best == nil || variant.Bitrate > best.Bitrate {
				best = variant
			}
		}
		if best == nil {
			return ""
		}
		return best.URL
	}
	return ""
}

// resolveDimensions applies the priority chain: explicit original_info
// metadata, then a WIDTHxHEIGHT pattern in the resolved URL, then the
// video aspect-ratio pair. Each side is validated independently.
func resolveDimensions(media *MediaEntity, downloadURL string) (int, int) {
	urlWidth, urlHeight := dimensionsFromURL(downloadURL)

	var width, height int
	if media.OriginalInfo != nil {
		width = normalizeDimension(media.OriginalInfo.Width)
		height = normalizeDimension(media.OriginalInfo.Height)
	}
	if width == 0 {
		width = urlWidth
	}
	if height == 0 {
		height = urlHeight
	}

	ratioWidth, ratioHeight := aspectRatioPair(media)
	if width == 0 {
		width = ratioWidth
	}
	if height == 0 {
		height = ratioHeight
	}
	return width, height
}

func resolveAspectRatio(media *MediaEntity, width, height int) []int {
	ratioWidth, ratioHeight := aspectRatioPair(media)
	if ratioWidth > 0 && ratioHeight > 0 {
		return []int{ratioWidth, ratioHeight}
	}
	if width > 0 && height > 0 {
		return []int{width, height}
	}
	return nil
}

func aspectRatioPair(media *MediaEntity) (int, int) {
	if media.VideoInfo == nil || len(media.VideoInfo.AspectRatio) < 2 {
		return 0, 0
	}
	return normalizeDimension(media.VideoInfo.AspectRatio[0]),
		normalizeDimension(media.VideoInfo.AspectRatio[1])
}

func dimensionsFromURL(rawURL string) (int, int) {
	if rawURL == "" {
		return 0, 0
	}
	match := resolutionPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return 0, 0
	}
	width, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0
	}
	height, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0
	}
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return width, height
}

// normalizeDimension treats non-positive values as absent, not zero.
func normalizeDimension(value int) int {
	if value <= 0 {
		return 0
	}
	return value
}
