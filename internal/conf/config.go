package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Search   SearchConfig   `mapstructure:"search"`
	Lexicon  LexiconConfig  `mapstructure:"lexicon"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type OpenAIConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	ClassifyModel string        `mapstructure:"classify_model"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	Provider string        `mapstructure:"provider"`
	APIHost  string        `mapstructure:"api_host"`
	APIKey   string        `mapstructure:"api_key"`
	EngineID string        `mapstructure:"engine_id"`
	PageSize int           `mapstructure:"page_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LexiconConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIHost string        `mapstructure:"api_host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type PipelineConfig struct {
	TrustedSources map[string]string `mapstructure:"trusted_sources"`
	SnippetLimit   int               `mapstructure:"snippet_limit"`
	SearchWorkers  int               `mapstructure:"search_workers"`
	ExtractWorkers int               `mapstructure:"extract_workers"`
	FetchTimeout   time.Duration     `mapstructure:"fetch_timeout"`
	FetchRate      float64           `mapstructure:"fetch_rate"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.ClassifyModel == "" {
		c.OpenAI.ClassifyModel = c.OpenAI.Model
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 60 * time.Second
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "googlecse"
	}
	if c.Search.PageSize == 0 {
		c.Search.PageSize = 2
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 10 * time.Second
	}
	if c.Lexicon.Timeout == 0 {
		c.Lexicon.Timeout = 5 * time.Second
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 6 * time.Hour
	}
	if c.Pipeline.SnippetLimit == 0 {
		c.Pipeline.SnippetLimit = 2000
	}
	if c.Pipeline.SearchWorkers == 0 {
		c.Pipeline.SearchWorkers = 4
	}
	if c.Pipeline.ExtractWorkers == 0 {
		c.Pipeline.ExtractWorkers = 4
	}
	if c.Pipeline.FetchTimeout == 0 {
		c.Pipeline.FetchTimeout = 8 * time.Second
	}
	if c.Pipeline.FetchRate == 0 {
		c.Pipeline.FetchRate = 2
	}
	if c.Pipeline.TrustedSources == nil {
		c.Pipeline.TrustedSources = map[string]string{
			"az": "https://e-qanun.az",
			"en": "https://www.law.cornell.edu/",
			"de": "https://www.gesetze-im-internet.de/",
			"ru": "http://www.consultant.ru/",
		}
	}
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.Search.Provider == "googlecse" && (c.Search.APIKey == "" || c.Search.EngineID == "") {
		return fmt.Errorf("search.api_key and search.engine_id are required for the googlecse provider")
	}
	return nil
}
