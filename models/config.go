package models

type Config struct {
	LogLevel    string
	APIHostname string
	CookiesFile string
	MetricsAddr string

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string

	// RequestRate and RequestBurst bound outgoing GraphQL calls; the
	// upstream endpoint is rate-sensitive.
	RequestRate  float64
	RequestBurst int
}

type ExtractorConfig struct {
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}
