package config

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream scheduling provider (HubSpot public meetings API).
	HubspotBaseURL      string        `mapstructure:"HUBSPOT_BASE_URL"`
	HubspotMeetingSlug  string        `mapstructure:"HUBSPOT_MEETING_SLUG"`
	HubspotMeetingURL   string        `mapstructure:"HUBSPOT_MEETING_URL"`
	HubspotBookLocation string        `mapstructure:"HUBSPOT_BOOK_LOCATION"`
	UpstreamTimeout     time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	// Static site bundle.
	StaticDir    string `mapstructure:"STATIC_DIR"`
	MaxBodyBytes int64  `mapstructure:"MAX_BODY_BYTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("HUBSPOT_BASE_URL", "https://api.hubspot.com")
	viper.SetDefault("HUBSPOT_MEETING_SLUG", "")
	viper.SetDefault("HUBSPOT_MEETING_URL", "")
	// The upstream validates this value against domains registered for the
	// meeting link. It must stay a static configured value; deriving it from
	// the request origin makes that validation fail silently with empty
	// availability.
	viper.SetDefault("HUBSPOT_BOOK_LOCATION", "meetings.hubspot.com")
	viper.SetDefault("UPSTREAM_TIMEOUT", "15s")
	viper.SetDefault("STATIC_DIR", "dist")
	viper.SetDefault("MAX_BODY_BYTES", 1<<20)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.HubspotMeetingSlug == "" {
		AppConfig.HubspotMeetingSlug = MeetingSlugFromURL(AppConfig.HubspotMeetingURL)
	}
	if AppConfig.HubspotMeetingSlug == "" {
		log.Fatal("HUBSPOT_MEETING_SLUG or HUBSPOT_MEETING_URL must be configured")
	}
	if AppConfig.UpstreamTimeout <= 0 {
		log.Fatal("UPSTREAM_TIMEOUT must be greater than zero")
	}
}

// MeetingSlugFromURL extracts the scheduling-link slug from a full meeting
// URL: the last non-empty path segment.
func MeetingSlugFromURL(meetingURL string) string {
	if meetingURL == "" {
		return ""
	}
	parsed, err := url.Parse(meetingURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(parsed.Path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
