package twitter

import (
	"testing"

	"xgallery/enums"
)

func TestResolveBestURLPhoto(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"bare jpg gets original format query",
			"https://pbs.twimg.com/media/abc.jpg",
			"https://pbs.twimg.com/media/abc.jpg?format=jpg&name=orig",
		},
		{
			"bare png gets original format query",
			"https://pbs.twimg.com/media/abc.png",
			"https://pbs.twimg.com/media/abc.png?format=png&name=orig",
		},
		{
			"existing format query untouched",
			"https://pbs.twimg.com/media/abc?format=jpg&name=small",
			"https://pbs.twimg.com/media/abc?format=jpg&name=small",
		},
	}
	for _, tc := range cases {
		media := &MediaEntity{Type: mediaTypePhoto, MediaURLHTTPS: tc.url}
		if got := resolveBestURL(media); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveBestURLVideo(t *testing.T) {
	media := &MediaEntity{
		Type:          mediaTypeVideo,
		MediaURLHTTPS: "https://pbs.twimg.com/ext_tw_video_thumb/1/pu/img/a.jpg",
		VideoInfo: &VideoInfo{
			Variants: []*Variant{
				{Bitrate: 832000, ContentType: contentTypeMP4, URL: "https://video.twimg.com/low.mp4"},
				{ContentType: "application/x-mpegURL", URL: "https://video.twimg.com/pl.m3u8"},
				{Bitrate: 2176000, ContentType: contentTypeMP4, URL: "https://video.twimg.com/high.mp4"},
			},
		},
	}
	want := "https://video.twimg.com/high.mp4"
	if got := resolveBestURL(media); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	// Repeated calls over the same input must agree.
	if got := resolveBestURL(media); got != want {
		t.Fatalf("second call got %q, want %q", got, want)
	}
}

func TestResolveBestURLVideoTieKeepsFirstSeen(t *testing.T) {
	media := &MediaEntity{
		Type: mediaTypeVideo,
		VideoInfo: &VideoInfo{
			Variants: []*Variant{
				{Bitrate: 832000, ContentType: contentTypeMP4, URL: "https://video.twimg.com/first.mp4"},
				{Bitrate: 832000, ContentType: contentTypeMP4, URL: "https://video.twimg.com/second.mp4"},
			},
		},
	}
	if got := resolveBestURL(media); got != "https://video.twimg.com/first.mp4" {
		t.Fatalf("got %q, want first-seen variant", got)
	}
}

func TestResolveBestURLVideoWithoutMP4(t *testing.T) {
	media := &MediaEntity{
		Type: mediaTypeVideo,
		VideoInfo: &VideoInfo{
			Variants: []*Variant{
				{ContentType: "application/x-mpegURL", URL: "https://video.twimg.com/pl.m3u8"},
			},
		},
	}
	if got := resolveBestURL(media); got != "" {
		t.Fatalf("got %q, want empty for hls-only media", got)
	}
}

func TestResolveDimensionsPriority(t *testing.T) {
	// original_info outranks a WIDTHxHEIGHT segment in the URL.
	media := &MediaEntity{
		Type:          mediaTypePhoto,
		OriginalInfo:  &OriginalInfo{Width: 100, Height: 50},
		MediaURLHTTPS: "https://pbs.twimg.com/media/200x80/abc.jpg",
	}
	width, height := resolveDimensions(media, "https://pbs.twimg.com/media/200x80/abc.jpg")
	if width != 100 || height != 50 {
		t.Fatalf("got %dx%d, want 100x50", width, height)
	}
}

func TestResolveDimensionsURLFallback(t *testing.T) {
	media := &MediaEntity{Type: mediaTypePhoto}
	width, height := resolveDimensions(media, "https://video.twimg.com/vid/1280x720/abc.mp4")
	if width != 1280 || height != 720 {
		t.Fatalf("got %dx%d, want 1280x720", width, height)
	}
}

func TestResolveDimensionsSidesResolveIndependently(t *testing.T) {
	// Width comes from original_info, the missing height falls through
	// to the URL.
	media := &MediaEntity{
		Type:         mediaTypePhoto,
		OriginalInfo: &OriginalInfo{Width: 640, Height: -1},
	}
	width, height := resolveDimensions(media, "https://video.twimg.com/vid/1280x720/abc.mp4")
	if width != 640 || height != 720 {
		t.Fatalf("got %dx%d, want 640x720", width, height)
	}
}

func TestResolveDimensionsAspectRatioLast(t *testing.T) {
	media := &MediaEntity{
		Type: mediaTypeVideo,
		VideoInfo: &VideoInfo{
			AspectRatio: []int{16, 9},
			Variants: []*Variant{
				{Bitrate: 1000, ContentType: contentTypeMP4, URL: "https://video.twimg.com/a.mp4"},
			},
		},
	}
	width, height := resolveDimensions(media, "https://video.twimg.com/a.mp4")
	if width != 16 || height != 9 {
		t.Fatalf("got %dx%d, want aspect-ratio fallback 16x9", width, height)
	}
}

func TestResolveAspectRatio(t *testing.T) {
	withRatio := &MediaEntity{VideoInfo: &VideoInfo{AspectRatio: []int{4, 3}}}
	if got := resolveAspectRatio(withRatio, 800, 600); got[0] != 4 || got[1] != 3 {
		t.Fatalf("got %v, want [4 3]", got)
	}
	photo := &MediaEntity{}
	if got := resolveAspectRatio(photo, 800, 600); got[0] != 800 || got[1] != 600 {
		t.Fatalf("got %v, want [800 600]", got)
	}
	if got := resolveAspectRatio(photo, 0, 0); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func photoEntity(id string) *MediaEntity {
	return &MediaEntity{
		Type:          mediaTypePhoto,
		IDStr:         id,
		MediaURLHTTPS: "https://pbs.twimg.com/media/" + id + ".jpg",
	}
}

func videoEntity(id string) *MediaEntity {
	return &MediaEntity{
		Type:          mediaTypeVideo,
		IDStr:         id,
		MediaURLHTTPS: "https://pbs.twimg.com/ext_tw_video_thumb/" + id + "/img.jpg",
		VideoInfo: &VideoInfo{
			Variants: []*Variant{
				{Bitrate: 1000, ContentType: contentTypeMP4, URL: "https://video.twimg.com/" + id + ".mp4"},
			},
		},
	}
}

func gifEntity(id string) *MediaEntity {
	entity := videoEntity(id)
	entity.Type = mediaTypeAnimatedGIF
	return entity
}

func TestExtractMediaTypeCounters(t *testing.T) {
	tweet := &TweetResult{
		RestID: "100",
		ExtendedEntities: &ExtendedEntities{
			Media: []*MediaEntity{
				photoEntity("p1"),
				photoEntity("p2"),
				videoEntity("v1"),
				gifEntity("g1"),
			},
		},
	}
	user := &User{ScreenName: "alice"}
	entries := extractMedia(tweet, user, enums.SourceLocationOriginal)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	wantTypes := []enums.MediaType{
		enums.MediaTypePhoto, enums.MediaTypePhoto,
		enums.MediaTypeVideo, enums.MediaTypeVideo,
	}
	wantTypeIndex := []int{0, 1, 0, 1}
	// The animated gif normalizes to video but never advances its own
	// literal-type counter.
	wantTypeIndexOriginal := []int{0, 1, 0, 0}

	for i, entry := range entries {
		if entry.Type != wantTypes[i] {
			t.Errorf("entry %d: type %s, want %s", i, entry.Type, wantTypes[i])
		}
		if entry.IsVideo() != (wantTypes[i] == enums.MediaTypeVideo) {
			t.Errorf("entry %d: IsVideo() = %v, want %v",
				i, entry.IsVideo(), wantTypes[i] == enums.MediaTypeVideo)
		}
		if entry.TypeIndex != wantTypeIndex[i] {
			t.Errorf("entry %d: typeIndex %d, want %d", i, entry.TypeIndex, wantTypeIndex[i])
		}
		if entry.TypeIndexOriginal != wantTypeIndexOriginal[i] {
			t.Errorf("entry %d: typeIndexOriginal %d, want %d",
				i, entry.TypeIndexOriginal, wantTypeIndexOriginal[i])
		}
		if entry.Index != i {
			t.Errorf("entry %d: index %d, want %d", i, entry.Index, i)
		}
		if entry.TweetID != "100" || entry.ScreenName != "alice" {
			t.Errorf("entry %d: provenance %s/%s", i, entry.TweetID, entry.ScreenName)
		}
	}
	if entries[3].TypeOriginal != mediaTypeAnimatedGIF {
		t.Fatalf("gif entry must keep its literal type, got %s", entries[3].TypeOriginal)
	}
}

func TestExtractMediaSkipsMalformed(t *testing.T) {
	missingID := photoEntity("")
	hlsOnly := &MediaEntity{
		Type:          mediaTypeVideo,
		IDStr:         "v-bad",
		MediaURLHTTPS: "https://pbs.twimg.com/thumb.jpg",
		VideoInfo: &VideoInfo{
			Variants: []*Variant{{ContentType: "application/x-mpegURL", URL: "https://video.twimg.com/pl.m3u8"}},
		},
	}
	tweet := &TweetResult{
		RestID: "100",
		ExtendedEntities: &ExtendedEntities{
			Media: []*MediaEntity{missingID, hlsOnly, nil, photoEntity("good")},
		},
	}
	entries := extractMedia(tweet, &User{ScreenName: "alice"}, enums.SourceLocationOriginal)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].MediaID != "good" {
		t.Fatalf("got media %s, want the valid photo", entries[0].MediaID)
	}
}

func TestExtractMediaStripsShortURLFromText(t *testing.T) {
	media := photoEntity("p1")
	media.URL = "https://t.co/abc"
	tweet := &TweetResult{
		RestID:           "100",
		FullText:         "look at this https://t.co/abc",
		ExtendedEntities: &ExtendedEntities{Media: []*MediaEntity{media}},
	}
	entries := extractMedia(tweet, &User{ScreenName: "alice"}, enums.SourceLocationOriginal)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].TweetText != "look at this" {
		t.Fatalf("got text %q, want short link stripped", entries[0].TweetText)
	}
}

func TestExtractMediaEmptyWithoutEntities(t *testing.T) {
	tweet := &TweetResult{RestID: "100"}
	if entries := extractMedia(tweet, &User{}, enums.SourceLocationOriginal); entries != nil {
		t.Fatalf("got %v, want nil for text-only tweet", entries)
	}
}

func TestReconcileTweetUnwrapsNestedNode(t *testing.T) {
	inner := &TweetResult{RestID: "42", FullText: "inner"}
	result := reconcileTweet(&TweetResult{Tweet: inner})
	if result.RestID != "42" || result.FullText != "inner" {
		t.Fatal("nested tweet node must be unwrapped")
	}
}

func TestReconcileTweetCopiesLegacyFields(t *testing.T) {
	result := reconcileTweet(&TweetResult{
		Legacy: &Tweet{
			FullText:         "legacy text",
			IDStr:            "7",
			ExtendedEntities: &ExtendedEntities{Media: []*MediaEntity{photoEntity("p1")}},
		},
	})
	if result.FullText != "legacy text" || result.IDStr != "7" {
		t.Fatal("legacy fields must be copied up when modern fields are empty")
	}
	if result.ExtendedEntities == nil || len(result.ExtendedEntities.Media) != 1 {
		t.Fatal("legacy extended entities must be copied up")
	}
}

func TestReconcileTweetNoteTextWins(t *testing.T) {
	note := &NoteTweet{}
	note.NoteTweetResults.Result.Text = "the full long-form text"
	result := reconcileTweet(&TweetResult{
		FullText:  "truncated…",
		NoteTweet: note,
	})
	if result.FullText != "the full long-form text" {
		t.Fatalf("got %q, want note text to win", result.FullText)
	}
}

func TestReconcileUser(t *testing.T) {
	user := &User{Legacy: &UserLegacy{ScreenName: "alice", Name: "Alice"}}
	reconcileUser(user)
	if user.ScreenName != "alice" || user.Name != "Alice" {
		t.Fatal("legacy user fields must be copied up")
	}

	modern := &User{ScreenName: "bob", Legacy: &UserLegacy{ScreenName: "old"}}
	reconcileUser(modern)
	if modern.ScreenName != "bob" {
		t.Fatal("modern screen name must not be overwritten")
	}
}
