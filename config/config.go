package config

import (
	"time"
)

type Config struct {
	Server  ServerConfig  `json:"server"`
	GitHub  GitHubConfig  `json:"github"`
	Gemini  GeminiConfig  `json:"gemini"`
	Admin   AdminConfig   `json:"admin"`
	Collect CollectConfig `json:"collect"`
	Logging LoggingConfig `json:"logging"`
	HTTP    HTTPConfig    `json:"http"`
}

type ServerConfig struct {
	Port int `json:"port" env:"SERVER_PORT" default:"9000"`
	// Collection runs synchronously inside the request, so the write timeout
	// has to cover a full pipeline run including model calls.
	ReadTimeout  time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"300s"`
	WriteTimeout time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"300s"`
	IdleTimeout  time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
}

type GitHubConfig struct {
	Token   string `json:"-" env:"GITHUB_TOKEN"`
	Repo    string `json:"repo" env:"GITHUB_REPO"`
	APIBase string `json:"api_base" env:"GITHUB_API_BASE" default:"https://api.github.com"`

	MaxRetries     int           `json:"max_retries" env:"GITHUB_MAX_RETRIES" default:"3"`
	ConflictDelay  time.Duration `json:"conflict_delay" env:"GITHUB_CONFLICT_DELAY" default:"1s"`
	PostWriteDelay time.Duration `json:"post_write_delay" env:"GITHUB_POST_WRITE_DELAY" default:"500ms"`
	QuotaThreshold int           `json:"quota_threshold" env:"GITHUB_QUOTA_THRESHOLD" default:"10"`
	RequestTimeout time.Duration `json:"request_timeout" env:"GITHUB_REQUEST_TIMEOUT" default:"30s"`
}

type GeminiConfig struct {
	APIKey  string `json:"-" env:"GEMINI_API_KEY"`
	Model   string `json:"model" env:"GEMINI_MODEL" default:"gemini-pro"`
	APIBase string `json:"api_base" env:"GEMINI_API_BASE" default:"https://generativelanguage.googleapis.com"`

	RequestTimeout time.Duration `json:"request_timeout" env:"GEMINI_REQUEST_TIMEOUT" default:"120s"`
	MaxRetries     int           `json:"max_retries" env:"GEMINI_MAX_RETRIES" default:"3"`
	BackoffBase    time.Duration `json:"backoff_base" env:"GEMINI_BACKOFF_BASE" default:"2s"`
	BackoffCap     time.Duration `json:"backoff_cap" env:"GEMINI_BACKOFF_CAP" default:"10s"`
	ItemDelay      time.Duration `json:"item_delay" env:"GEMINI_ITEM_DELAY" default:"500ms"`
}

type AdminConfig struct {
	Password    string        `json:"-" env:"ADMIN_PASSWORD"`
	TokenSecret string        `json:"-" env:"ADMIN_TOKEN_SECRET"`
	SessionTTL  time.Duration `json:"session_ttl" env:"ADMIN_SESSION_TTL" default:"12h"`
}

type CollectConfig struct {
	MaxAgeHours       int           `json:"max_age_hours" env:"COLLECT_MAX_AGE_HOURS" default:"24"`
	DaysToKeep        int           `json:"days_to_keep" env:"COLLECT_DAYS_TO_KEEP" default:"30"`
	CandidateLimit    int           `json:"candidate_limit" env:"COLLECT_CANDIDATE_LIMIT" default:"30"`
	HostFetchInterval time.Duration `json:"host_fetch_interval" env:"COLLECT_HOST_FETCH_INTERVAL" default:"1s"`
	// Interval between scheduled collection runs. Zero disables the
	// scheduler; runs are then triggered through the admin API only.
	Interval time.Duration `json:"interval" env:"COLLECT_INTERVAL" default:"0s"`
}

type LoggingConfig struct {
	Level string `json:"level" env:"LOG_LEVEL" default:"info"`
}

type HTTPConfig struct {
	ClientTimeout       time.Duration `json:"client_timeout" env:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	TLSHandshakeTimeout time.Duration `json:"tls_handshake_timeout" env:"HTTP_TLS_HANDSHAKE_TIMEOUT" default:"10s"`
	IdleConnTimeout     time.Duration `json:"idle_conn_timeout" env:"HTTP_IDLE_CONN_TIMEOUT" default:"90s"`
}

// NewConfig creates a new configuration by loading from environment variables
// with fallback to default values
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	// The token secret signs admin session cookies. When not set explicitly
	// it falls back to the admin password so a single-secret deployment works.
	if config.Admin.TokenSecret == "" {
		config.Admin.TokenSecret = config.Admin.Password
	}

	return config, nil
}

// Load is an alias for NewConfig.
func Load() (*Config, error) {
	return NewConfig()
}
