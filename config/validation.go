package config

import "fmt"

// validateConfig rejects configurations that cannot possibly run. Missing
// credentials are fatal at startup; there is no retry path for them.
func validateConfig(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required: set it in the environment or a .env file")
	}
	if config.GitHub.Repo == "" {
		return fmt.Errorf("GITHUB_REPO is required (owner/name): set it in the environment or a .env file")
	}
	if config.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required: set it in the environment or a .env file")
	}
	if config.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required: set it in the environment or a .env file")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Collect.MaxAgeHours <= 0 {
		return fmt.Errorf("COLLECT_MAX_AGE_HOURS must be positive, got %d", config.Collect.MaxAgeHours)
	}
	if config.Collect.DaysToKeep <= 0 {
		return fmt.Errorf("COLLECT_DAYS_TO_KEEP must be positive, got %d", config.Collect.DaysToKeep)
	}
	if config.Collect.CandidateLimit <= 0 {
		return fmt.Errorf("COLLECT_CANDIDATE_LIMIT must be positive, got %d", config.Collect.CandidateLimit)
	}
	if config.GitHub.MaxRetries <= 0 {
		return fmt.Errorf("GITHUB_MAX_RETRIES must be positive, got %d", config.GitHub.MaxRetries)
	}

	return nil
}
