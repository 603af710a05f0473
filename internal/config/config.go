package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// Unlike a server deployment, every key has a usable default so the CLI
// works out of the box.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		DBName:         getEnv("DB_NAME", "scheduler.db"),
		BoltPath:       getEnv("BOLT_PATH", "scheduler.bolt"),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnv("GCP_PROJECT", ""),
			Topic:     getEnv("PUBSUB_TOPIC", "scheduling-messages"),
		},
		OpenBrowser: getEnv("OPEN_BROWSER", "false") == "true",
	}
}

// Validate checks settings that would otherwise fail late.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if (c.Slack.Token == "") != (c.Slack.ChannelID == "") {
		return errors.New("SLACK_BOT_TOKEN and SLACK_CHANNEL_ID must be set together")
	}
	if c.PubSub.ProjectID != "" && c.PubSub.Topic == "" {
		return errors.New("PUBSUB_TOPIC is required when GCP_PROJECT is set")
	}
	return nil
}
