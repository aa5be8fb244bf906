package config

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func Load() {
	if err := godotenv.Load(); err != nil {
		zap.S().Debugf("no .env file loaded: %v", err)
	}
	LoadEnv()
	if err := LoadExtractorConfigs(); err != nil {
		zap.S().Warnf("failed to load extractor configs: %v", err)
	}
}
