package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DatabaseURL string
	AppBaseURL  string
	CORSOrigins []string

	JWTSecret string
	JWTTTL    time.Duration

	LLM   LLMConfig
	Guest GuestConfig

	Stripe  StripeConfig
	Storage StorageConfig

	LogLevel  string
	LogFormat string
}

type LLMConfig struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	Timeout       time.Duration
}

type GuestConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

type StripeConfig struct {
	SecretKey    string
	PriceMonthly string
	PriceYearly  string
}

// Enabled reports whether a Stripe key is configured.
func (s StripeConfig) Enabled() bool {
	return s.SecretKey != ""
}

type StorageConfig struct {
	Type         string
	LocalPath    string
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("APP_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("GUEST_LIMIT_ENABLED", false)
	v.SetDefault("GUEST_LIMIT", 3)
	v.SetDefault("GUEST_LIMIT_WINDOW", "24h")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_PRICE_MONTHLY", "")
	v.SetDefault("STRIPE_PRICE_YEARLY", "")
	v.SetDefault("STORAGE_TYPE", "local")
	v.SetDefault("STORAGE_LOCAL_PATH", "./exports")
	v.SetDefault("AWS_S3_BUCKET", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		AppBaseURL:  strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		LLM: LLMConfig{
			Provider:      strings.ToLower(v.GetString("LLM_PROVIDER")),
			OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
			OpenAIModel:   v.GetString("OPENAI_MODEL"),
			OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
			GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
			GeminiModel:   v.GetString("GEMINI_MODEL"),
			Timeout:       v.GetDuration("LLM_TIMEOUT"),
		},
		Guest: GuestConfig{
			Enabled: v.GetBool("GUEST_LIMIT_ENABLED"),
			Limit:   v.GetInt("GUEST_LIMIT"),
			Window:  v.GetDuration("GUEST_LIMIT_WINDOW"),
		},
		Stripe: StripeConfig{
			SecretKey:    v.GetString("STRIPE_SECRET_KEY"),
			PriceMonthly: v.GetString("STRIPE_PRICE_MONTHLY"),
			PriceYearly:  v.GetString("STRIPE_PRICE_YEARLY"),
		},
		Storage: StorageConfig{
			Type:         strings.ToLower(v.GetString("STORAGE_TYPE")),
			LocalPath:    v.GetString("STORAGE_LOCAL_PATH"),
			S3Bucket:     v.GetString("AWS_S3_BUCKET"),
			S3Region:     v.GetString("AWS_REGION"),
			AWSAccessKey: v.GetString("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		},
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	if cfg.Guest.Limit < 0 {
		cfg.Guest.Limit = 0
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
