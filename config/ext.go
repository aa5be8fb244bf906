package config

import (
	"fmt"
	"os"

	"xgallery/models"

	"gopkg.in/yaml.v3"
)

var extractorConfigs map[string]*models.ExtractorConfig

func LoadExtractorConfigs() error {
	extractorConfigs = make(map[string]*models.ExtractorConfig)
	configPath := "ext-cfg.yaml"

	_, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read extractor config file: %w", err)
	}

	var rawConfig map[string]*models.ExtractorConfig
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return fmt.Errorf("failed to decode extractor config file: %w", err)
	}
	for codeName, cfg := range rawConfig {
		extractorConfigs[codeName] = cfg
	}
	return nil
}

func GetExtractorConfig(codeName string) *models.ExtractorConfig {
	if cfg, exists := extractorConfigs[codeName]; exists {
		return cfg
	}
	return nil
}
