package config

import (
	"os"
	"strconv"

	"xgallery/models"

	"go.uber.org/zap"
)

var Env = GetDefaultConfig()

func GetDefaultConfig() *models.Config {
	return &models.Config{
		LogLevel:     "info",
		APIHostname:  "x.com",
		CookiesFile:  "cookies/twitter.txt",
		RequestRate:  1,
		RequestBurst: 2,
	}
}

func LoadEnv() {
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		Env.LogLevel = value
	}
	if value := os.Getenv("API_HOSTNAME"); value != "" {
		Env.APIHostname = value
	}
	if value := os.Getenv("COOKIES_FILE"); value != "" {
		Env.CookiesFile = value
	} else {
		zap.S().Debugf("COOKIES_FILE is not set, using default %s", Env.CookiesFile)
	}
	if value := os.Getenv("METRICS_ADDR"); value != "" {
		Env.MetricsAddr = value
	}
	if value := os.Getenv("HTTP_PROXY"); value != "" {
		Env.HTTPProxy = value
	}
	if value := os.Getenv("HTTPS_PROXY"); value != "" {
		Env.HTTPSProxy = value
	}
	if value := os.Getenv("NO_PROXY"); value != "" {
		Env.NoProxy = value
	}
	if value := os.Getenv("REQUEST_RATE"); value != "" {
		if requestRate, err := strconv.ParseFloat(value, 64); err == nil && requestRate > 0 {
			Env.RequestRate = requestRate
		} else {
			zap.S().Warn("REQUEST_RATE env is not a valid positive number")
		}
	}
	if value := os.Getenv("REQUEST_BURST"); value != "" {
		if requestBurst, err := strconv.Atoi(value); err == nil && requestBurst > 0 {
			Env.RequestBurst = requestBurst
		} else {
			zap.S().Warn("REQUEST_BURST env is not a valid positive integer")
		}
	}
}
