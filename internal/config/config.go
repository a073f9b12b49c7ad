package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // debug | release | test
}

type SecurityConfig struct {
	SecretKey             string `yaml:"secret_key"`
	CSRFEnabled           bool   `yaml:"csrf_enabled"`
	SessionCookieName     string `yaml:"session_cookie_name"`
	SessionCookieSecure   bool   `yaml:"session_cookie_secure"`
	SessionCookieHTTPOnly bool   `yaml:"session_cookie_httponly"`
	SessionLifetimeHours  int    `yaml:"session_lifetime_hours"`
	BcryptCost            int    `yaml:"bcrypt_cost"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	SuppressSend bool   `yaml:"suppress_send"`
}

type OTPConfig struct {
	Length              int    `yaml:"length"`
	TTLMinutes          int    `yaml:"ttl_minutes"`
	MaxAttempts         int    `yaml:"max_attempts"`
	MaxResends          int    `yaml:"max_resends"`
	ResendWindowMinutes int    `yaml:"resend_window_minutes"`
	Channel             string `yaml:"channel"` // email | sms
}

type MobizonConfig struct {
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type AppConfig struct {
	Timezone string `yaml:"timezone"`
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Security SecurityConfig `yaml:"security"`
	Email    EmailConfig    `yaml:"email"`
	OTP      OTPConfig      `yaml:"otp"`
	Mobizon  MobizonConfig  `yaml:"mobizon"`
	App      AppConfig      `yaml:"app"`
}

func Default() Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.Mode = "release"
	cfg.Security = SecurityConfig{
		CSRFEnabled:           true,
		SessionCookieName:     "wealthwise_session",
		SessionCookieSecure:   true,
		SessionCookieHTTPOnly: true,
		SessionLifetimeHours:  24,
		BcryptCost:            12,
	}
	cfg.Email.SMTPPort = 587
	cfg.OTP = OTPConfig{
		Length:              6,
		TTLMinutes:          10,
		MaxAttempts:         5,
		MaxResends:          3,
		ResendWindowMinutes: 10,
		Channel:             "email",
	}
	cfg.App.Timezone = "Asia/Kathmandu"
	return cfg
}

// Load reads path over the defaults, then applies .env and environment
// overrides. A missing file is fine when the environment supplies the rest.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads DefaultPath and panics on failure.
func LoadConfig() *Config {
	cfg, err := Load(DefaultPath)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Security.SecretKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.SMTPPassword = v
	}
	if v := os.Getenv("MOBIZON_API_KEY"); v != "" {
		c.Mobizon.APIKey = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Security.SecretKey) == "" {
		errs = append(errs, errors.New("security.secret_key is required"))
	}
	if c.Server.Port <= 0 {
		errs = append(errs, errors.New("server.port must be positive"))
	}
	if c.Security.SessionLifetimeHours <= 0 {
		errs = append(errs, errors.New("security.session_lifetime_hours must be positive"))
	}
	if c.OTP.Length <= 0 || c.OTP.TTLMinutes <= 0 || c.OTP.MaxAttempts <= 0 {
		errs = append(errs, errors.New("otp.length, otp.ttl_minutes and otp.max_attempts must be positive"))
	}
	switch c.OTP.Channel {
	case "email", "sms":
	default:
		errs = append(errs, fmt.Errorf("otp.channel %q: want email or sms", c.OTP.Channel))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("app.timezone: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.Security.SessionLifetimeHours) * time.Hour
}

func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.OTP.TTLMinutes) * time.Minute
}

func (c *Config) ResendWindow() time.Duration {
	return time.Duration(c.OTP.ResendWindowMinutes) * time.Minute
}

// Location falls back to UTC; Validate has already rejected bad names.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
