package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	JWTIssuer       string `yaml:"jwt_issuer"`
	VerificationKey string `yaml:"verification_key"`
	ResetGrantTTL   string `yaml:"reset_grant_ttl"`
}

type OTPConfig struct {
	MaxGenerateAttempts int    `yaml:"max_generate_attempts"`
	ResendWindow        string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type CDNConfig struct {
	UploadAvatarURL string `yaml:"upload_avatar_url"`
	GetAvatarURL    string `yaml:"get_avatar_url"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	CDN      CDNConfig      `yaml:"cdn"`
}

type Config struct {
	Port                string
	GinMode             string
	AppBaseURL          string
	DSN                 string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	JWTSecret           string
	JWTIssuer           string
	VerificationKey     string
	ResetGrantTTL       time.Duration
	OTPMaxGenAttempts   int
	OTPResendWindow     time.Duration
	TwilioSID           string
	TwilioToken         string
	TwilioFrom          string
	CasbinModelPath     string
	CDNUploadAvatarURL  string
	CDNGetAvatarURL     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	resendWindow, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	grantTTL, err := time.ParseDuration(configFile.Auth.ResetGrantTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset grant TTL: %w", err)
	}

	return &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		AppBaseURL:         env("APP_URL", configFile.App.BaseURL),
		DSN:                env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:          env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:      env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:            configFile.Redis.DB,
		JWTSecret:          env("JWT_SECRET", configFile.Auth.JWTSecret),
		JWTIssuer:          configFile.Auth.JWTIssuer,
		VerificationKey:    env("TOKEN_KEY", configFile.Auth.VerificationKey),
		ResetGrantTTL:      grantTTL,
		OTPMaxGenAttempts:  configFile.OTP.MaxGenerateAttempts,
		OTPResendWindow:    resendWindow,
		TwilioSID:          env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:        env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:         configFile.Twilio.FromNumber,
		CasbinModelPath:    configFile.Casbin.ModelPath,
		CDNUploadAvatarURL: env("CDN_SERVICE_URL", configFile.CDN.UploadAvatarURL),
		CDNGetAvatarURL:    configFile.CDN.GetAvatarURL,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
