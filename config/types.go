package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	// App
	LogLevel string `split_words:"true" default:"info" validate:"oneof=debug info warn error"`

	// GitHub
	GithubToken string   `split_words:"true" validate:"required"`
	Repos       []string `split_words:"true" validate:"required,min=1,dive,contains=/"`
	Locations   []string `split_words:"true" validate:"required,min=1,dive,min=1"`

	// Fetch tuning
	HTTPTimeout     time.Duration `envconfig:"APP_HTTP_TIMEOUT" default:"60s" validate:"gt=0"`
	RetryCooldown   time.Duration `split_words:"true" default:"60s" validate:"gt=0"`
	PerPage         int           `split_words:"true" default:"100" validate:"gt=0,lte=100"`
	GithubRateLimit int           `split_words:"true" default:"80" validate:"gt=0"`
	CacheSize       int           `split_words:"true" default:"10000" validate:"gt=0"`

	// Export
	ExportFormat string `split_words:"true" default:"csv" validate:"oneof=csv xlsx"`
	OutputDir    string `split_words:"true" default:"."`
}

type Loader struct {
	Prefix   string
	Validate *validator.Validate
}
