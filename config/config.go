package config

import (
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

type Config struct {
	PracticumToken string        `mapstructure:"practicum_token"`
	TelegramToken  string        `mapstructure:"telegram_token"`
	TelegramChatID int64         `mapstructure:"telegram_chat_id"`
	Endpoint       string        `mapstructure:"endpoint"`
	RetryTime      time.Duration `mapstructure:"retry_time"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	NtfyTopic      string        `mapstructure:"ntfy_topic"`
	NtfyServer     string        `mapstructure:"ntfy_server"`
	PushoverToken  string        `mapstructure:"pushover_token"`
	PushoverUser   string        `mapstructure:"pushover_user"`
}

var keys = []string{
	"practicum_token",
	"telegram_token",
	"telegram_chat_id",
	"endpoint",
	"retry_time",
	"request_timeout",
	"log_level",
	"log_file",
	"ntfy_topic",
	"ntfy_server",
	"pushover_token",
	"pushover_user",
}

// SetDefaults registers defaults and environment bindings on v.
// Keys are read from the upper-cased environment variable of the same name.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("retry_time", 600*time.Second)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("log_level", "debug")
	v.SetDefault("log_file", "main.log")
	v.SetDefault("ntfy_server", "https://ntfy.sh")

	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
}

// Load reads .env, the optional config file and the environment into a Config.
// A missing config file is not an error, an explicitly named one is.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("can't load .env file", slog.String("error", err.Error()))
	}

	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(path.Join("."))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "can't read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RetryTime <= 0 {
		return errors.Errorf("retry_time must be positive, got %s", c.RetryTime)
	}
	if c.RequestTimeout < 0 {
		return errors.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}

	return nil
}

// CheckTokens reports every missing credential in one error.
func (c *Config) CheckTokens() error {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.TelegramChatID == 0 {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

func MustLoadConfig(v *viper.Viper, configFile string) *Config {
	cfg, err := Load(v, configFile)
	if err != nil {
		slog.Error("can't initialize config.", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if err := cfg.CheckTokens(); err != nil {
		slog.Error("program stopped.", slog.String("err", err.Error()))
		os.Exit(1)
	}

	return cfg
}
