package config

// Config holds all configuration for the application.
type Config struct {
	Port           string
	StorageBackend string
	DBName         string
	BoltPath       string
	Turso          TursoConfig
	Slack          SlackConfig
	PubSub         PubSubConfig
	OpenBrowser    bool
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type PubSubConfig struct {
	ProjectID string
	Topic     string
}

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// SlackEnabled reports whether messages should also be posted to Slack.
func (c Config) SlackEnabled() bool { return c.Slack.Token != "" && c.Slack.ChannelID != "" }

// PubSubEnabled reports whether share events should be published.
func (c Config) PubSubEnabled() bool { return c.PubSub.ProjectID != "" }
