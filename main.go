package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"xgallery/config"
	"xgallery/ext"
	"xgallery/ext/twitter"
	"xgallery/logger"
	"xgallery/metrics"
	"xgallery/models"
	"xgallery/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const maxRedirects = 3

var postIDPattern = regexp.MustCompile(`^\d+$`)

func main() {
	logger.Init()
	defer logger.Sync()

	config.Load()
	logger.SetLevel(config.Env.LogLevel)

	zap.S().Debugf("loaded %d extractors", len(ext.List))

	metrics.StartServer(config.Env.MetricsAddr)

	args := os.Args[1:]
	if len(args) == 0 {
		zap.S().Fatalf(
			"usage: xgallery <post-id|status-url> ... (supported: %s)",
			strings.Join(visibleExtractorNames(), ", "),
		)
	}

	ctx := context.Background()
	exitCode := 0
	for _, arg := range args {
		entries, err := resolve(ctx, arg)
		if err != nil {
			zap.S().Errorf("failed to resolve %s: %v", arg, err)
			exitCode = 1
			continue
		}
		if entries == nil {
			entries = []*models.MediaEntry{}
		}
		out, err := sonic.MarshalIndent(entries, "", "  ")
		if err != nil {
			zap.S().Errorf("failed to encode result for %s: %v", arg, err)
			exitCode = 1
			continue
		}
		fmt.Println(string(out))
	}
	os.Exit(exitCode)
}

func resolve(ctx context.Context, arg string) ([]*models.MediaEntry, error) {
	if postIDPattern.MatchString(arg) {
		return twitter.GetTweetMedia(ctx, twitter.DefaultClient(), arg)
	}
	return resolveURL(ctx, arg, 0)
}

func resolveURL(ctx context.Context, rawURL string, depth int) ([]*models.MediaEntry, error) {
	if depth > maxRedirects {
		return nil, util.ErrUnsupportedURL
	}
	extractor, groups := ext.FindByURL(rawURL)
	if extractor == nil {
		return nil, util.ErrUnsupportedURL
	}
	resp, err := extractor.Run(&models.ResolveContext{
		Context:           ctx,
		Extractor:         extractor,
		MatchedContentID:  groups["id"],
		MatchedContentURL: rawURL,
		MatchedGroups:     groups,
	})
	if err != nil {
		return nil, err
	}
	if resp.URL != "" {
		if !extractor.IsRedirect {
			return nil, util.ErrUnsupportedURL
		}
		return resolveURL(ctx, resp.URL, depth+1)
	}
	return resp.MediaList, nil
}

// visibleExtractorNames lists the extractors worth advertising; the
// redirect resolvers stay hidden from the usage line.
func visibleExtractorNames() []string {
	names := make([]string, 0, len(ext.List))
	for _, extractor := range ext.List {
		if extractor.IsHidden {
			continue
		}
		names = append(names, extractor.Name)
	}
	return names
}
