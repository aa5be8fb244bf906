package ext

import (
	"strings"

	"xgallery/ext/twitter"
	"xgallery/models"
	"xgallery/util"
)

var List = []*models.Extractor{
	twitter.Extractor,
	twitter.ShortExtractor,
}

// FindByURL matches a URL against the registered extractors, host
// first, then the full pattern. The returned groups map carries the
// pattern's named captures (notably "id").
func FindByURL(rawURL string) (*models.Extractor, map[string]string) {
	extractor := findByHost(rawURL)
	if extractor == nil {
		return nil, nil
	}
	match := extractor.URLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return nil, nil
	}
	groups := make(map[string]string)
	for i, name := range extractor.URLPattern.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return extractor, groups
}

func findByHost(rawURL string) *models.Extractor {
	baseHost, err := util.ExtractBaseHost(rawURL)
	if err != nil {
		return nil
	}
	hostName := strings.Split(baseHost, ".")[0]
	for _, extractor := range List {
		for _, host := range extractor.Host {
			if host == hostName {
				return extractor
			}
		}
	}
	return nil
}
