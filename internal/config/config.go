package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	Pricing    PricingConfig
	Features   FeatureConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// OpenAIConfig holds credentials and model selection for the image pipeline.
// PrimaryModel is tried first; a 403/404 from the upstream falls back to
// FallbackModel exactly once.
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	PrimaryModel  string
	FallbackModel string
	VisionModel   string
	Timeout       time.Duration
}

// GenerationConfig bounds the generation pipeline.
type GenerationConfig struct {
	Limit            int   // successful generations per session before the gate
	MaxRequestBytes  int64 // request body ceiling (413 above this)
	MaxResponseBytes int   // serialized response ceiling (507 above this)
}

type PricingConfig struct {
	BasePrice        float64
	ShippingFee      float64
	FreeShippingOver float64
	TaxRate          float64
}

// FeatureConfig replaces the ambient feature-flag store of the storefront
// client: flags are read once at startup and passed explicitly.
type FeatureConfig struct {
	BetaGate       bool
	ReferenceImage bool
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	viper.SetDefault("OPENAI_PRIMARY_MODEL", "gpt-image-1")
	viper.SetDefault("OPENAI_FALLBACK_MODEL", "dall-e-3")
	viper.SetDefault("OPENAI_VISION_MODEL", "gpt-4o-mini")
	// 24s leaves a 2s margin before short-lived hosting platforms cut the
	// request off at 26s.
	viper.SetDefault("OPENAI_TIMEOUT_SECONDS", 24)
	viper.SetDefault("GENERATION_LIMIT", 3)
	viper.SetDefault("GENERATION_MAX_REQUEST_BYTES", 6*1024*1024)
	viper.SetDefault("GENERATION_MAX_RESPONSE_BYTES", 5*1024*1024)
	viper.SetDefault("PRICING_BASE_PRICE", 19.95)
	viper.SetDefault("PRICING_SHIPPING_FEE", 4.99)
	viper.SetDefault("PRICING_FREE_SHIPPING_OVER", 50.0)
	viper.SetDefault("PRICING_TAX_RATE", 0.08)
	viper.SetDefault("FEATURE_BETA_GATE", true)
	viper.SetDefault("FEATURE_REFERENCE_IMAGE", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		OpenAI: OpenAIConfig{
			APIKey:        viper.GetString("OPENAI_API_KEY_SERVER"),
			BaseURL:       viper.GetString("OPENAI_BASE_URL"),
			PrimaryModel:  viper.GetString("OPENAI_PRIMARY_MODEL"),
			FallbackModel: viper.GetString("OPENAI_FALLBACK_MODEL"),
			VisionModel:   viper.GetString("OPENAI_VISION_MODEL"),
			Timeout:       time.Duration(viper.GetInt("OPENAI_TIMEOUT_SECONDS")) * time.Second,
		},
		Generation: GenerationConfig{
			Limit:            viper.GetInt("GENERATION_LIMIT"),
			MaxRequestBytes:  viper.GetInt64("GENERATION_MAX_REQUEST_BYTES"),
			MaxResponseBytes: viper.GetInt("GENERATION_MAX_RESPONSE_BYTES"),
		},
		Pricing: PricingConfig{
			BasePrice:        viper.GetFloat64("PRICING_BASE_PRICE"),
			ShippingFee:      viper.GetFloat64("PRICING_SHIPPING_FEE"),
			FreeShippingOver: viper.GetFloat64("PRICING_FREE_SHIPPING_OVER"),
			TaxRate:          viper.GetFloat64("PRICING_TAX_RATE"),
		},
		Features: FeatureConfig{
			BetaGate:       viper.GetBool("FEATURE_BETA_GATE"),
			ReferenceImage: viper.GetBool("FEATURE_REFERENCE_IMAGE"),
		},
	}
}
