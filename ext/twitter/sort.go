package twitter

import (
	"regexp"
	"sort"
	"strconv"

	"xgallery/models"
)

var visualIndexPattern = regexp.MustCompile(`/(photo|video)/(\d+)(?:[?#].*)?$`)

// visualIndexFromURL parses the 1-based position from a permalink
// fragment like /photo/2 and converts it to 0-based. Unparseable
// fragments yield 0; the stable sort below keeps such entries in their
// original relative order instead of guessing a position.
func visualIndexFromURL(rawURL string) int {
	if rawURL == "" {
		return 0
	}
	match := visualIndexPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return 0
	}
	position, err := strconv.Atoi(match[2])
	if err != nil || position <= 0 {
		return 0
	}
	return position - 1
}

// sortByVisualOrder re-sorts entries to match the rendered grid rather
// than API return order, then reassigns Index to the contiguous
// 0..n-1 rank (parsed positions may have gaps or duplicates).
func sortByVisualOrder(entries []*models.MediaEntry) []*models.MediaEntry {
	if len(entries) <= 1 {
		return entries
	}
	sorted := make([]*models.MediaEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return visualIndexFromURL(sorted[i].ExpandedURL) < visualIndexFromURL(sorted[j].ExpandedURL)
	})
	for rank, entry := range sorted {
		entry.Index = rank
	}
	return sorted
}
