package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	GeminiApiKey string
	GithubToken  string
	Generator    Generator
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Generator holds timeouts for the external AI and profile-lookup calls.
// Each call is attempted exactly once per request; there are no retries.
type Generator struct {
	Timeout        time.Duration
	ProfileTimeout time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GENERATOR_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PROFILE_LOOKUP_TIMEOUT_SECONDS", 8)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.GithubToken = viper.GetString("GITHUB_TOKEN")
	config.Generator.Timeout = time.Duration(viper.GetInt("GENERATOR_TIMEOUT_SECONDS")) * time.Second
	config.Generator.ProfileTimeout = time.Duration(viper.GetInt("PROFILE_LOOKUP_TIMEOUT_SECONDS")) * time.Second

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
