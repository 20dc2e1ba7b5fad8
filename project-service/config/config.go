package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	sharedinfra "github.com/collabhub/platform/shared/infrastructure"
	"github.com/collabhub/platform/shared/resilience"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string             `mapstructure:"service_name"`
	Env         string             `mapstructure:"env"`
	Port        string             `mapstructure:"port"`
	Database    Database           `mapstructure:"database"`
	AWS         AWS                `mapstructure:"aws"`
	Telemetry   Telemetry          `mapstructure:"telemetry"`
	Remote      RemoteDependencies `mapstructure:"dependencies"`
}

type Database struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AWS struct {
	Region      string `mapstructure:"region"`
	Endpoint    string `mapstructure:"endpoint"`
	SNSTopicArn string `mapstructure:"sns_topic_arn"`
	SQSQueueURL string `mapstructure:"sqs_queue_url"`
	SQSWorkers  int32  `mapstructure:"sqs_workers"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// RemoteDependency configures the client and breaker for one collaborator.
type RemoteDependency struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold int           `mapstructure:"failure_threshold"`
	RecoveryTimeout  time.Duration `mapstructure:"recovery_timeout"`
}

type RemoteDependencies struct {
	Team         RemoteDependency `mapstructure:"team"`
	Notification RemoteDependency `mapstructure:"notification"`
}

// ReadConfig loads <ENVIRONMENT>.json (local.json by default) from this
// directory. PROJECT_* environment variables override file values, with
// dots in keys written as underscores (PROJECT_DEPENDENCIES_TEAM_BASE_URL).
func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("unable to get current file")
	}

	return readConfig(filepath.Dir(filename), getConfigName())
}

func readConfig(dir, name string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("PROJECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "project-service")
	v.SetDefault("env", getEnv("ENV", "local"))
	v.SetDefault("port", getEnv("PORT", "8080"))

	v.SetDefault("database.url", os.Getenv("DATABASE_URL"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "collabhub")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	v.SetDefault("aws.endpoint", os.Getenv("AWS_ENDPOINT_URL"))
	v.SetDefault("aws.sqs_workers", 10)

	v.SetDefault("telemetry.enabled", true)

	v.SetDefault("dependencies.team.base_url", "http://localhost:8002")
	v.SetDefault("dependencies.team.timeout", 10*time.Second)
	v.SetDefault("dependencies.team.failure_threshold", resilience.DefaultFailureThreshold)
	v.SetDefault("dependencies.team.recovery_timeout", resilience.DefaultRecoveryTimeout)

	v.SetDefault("dependencies.notification.base_url", "http://localhost:8004")
	v.SetDefault("dependencies.notification.timeout", 5*time.Second)
	v.SetDefault("dependencies.notification.failure_threshold", resilience.DefaultFailureThreshold)
	v.SetDefault("dependencies.notification.recovery_timeout", resilience.DefaultRecoveryTimeout)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.Remote.Team.BaseURL == "" {
		return errors.New("dependencies.team.base_url is required")
	}
	if c.Remote.Notification.BaseURL == "" {
		return errors.New("dependencies.notification.base_url is required")
	}
	return nil
}

// GetDatabaseURL returns database.url if set, otherwise builds one.
func (c *Config) GetDatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// AWSConfig returns the shared AWS client settings.
func (c *Config) AWSConfig() sharedinfra.AWSConfig {
	return sharedinfra.AWSConfig{
		Region:   c.AWS.Region,
		Endpoint: c.AWS.Endpoint,
	}
}

// DependencyConfigs returns the remote call settings keyed by dependency.
func (c *Config) DependencyConfigs() map[resilience.DependencyName]resilience.DependencyConfig {
	return map[resilience.DependencyName]resilience.DependencyConfig{
		resilience.TeamService:         c.Remote.Team.toResilience(),
		resilience.NotificationService: c.Remote.Notification.toResilience(),
	}
}

func (d RemoteDependency) toResilience() resilience.DependencyConfig {
	return resilience.DependencyConfig{
		BaseURL:          d.BaseURL,
		Timeout:          d.Timeout,
		FailureThreshold: d.FailureThreshold,
		RecoveryTimeout:  d.RecoveryTimeout,
	}
}
