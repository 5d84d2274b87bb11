package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Logger LoggerConfig
	LLM    LLMConfig
	Quiz   QuizConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// ProviderConfig holds the credentials and model of one generative-text provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type LLMConfig struct {
	// Provider is one of gemini, openai, anthropic, openrouter, ollama, mock.
	Provider   string
	Timeout    time.Duration
	Gemini     ProviderConfig
	OpenAI     ProviderConfig
	Anthropic  ProviderConfig
	OpenRouter ProviderConfig
	Ollama     ProviderConfig
	Retry      RetryConfig
}

type QuizConfig struct {
	Locale               string
	DefaultQuestionCount int
	GenerationCacheTTL   time.Duration
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AuthConfig holds token settings and the single demo account.
type AuthConfig struct {
	JWT          JWTConfig
	DemoEmail    string
	DemoPassword string
	DemoName     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.name", "FREEPDB1")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.gemini.model", "gemini-flash")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.anthropic.model", "claude-haiku")
	v.SetDefault("llm.openrouter.model", "google/gemini-2.0-flash-exp")
	v.SetDefault("llm.ollama.model", "qwen3:0.6b")
	v.SetDefault("llm.ollama.base_url", "http://localhost:11434")
	v.SetDefault("llm.retry.max_attempts", 3)
	v.SetDefault("llm.retry.initial_wait", "1s")
	v.SetDefault("llm.retry.max_wait", "10s")
	v.SetDefault("llm.retry.multiplier", 2.0)

	v.SetDefault("quiz.locale", "tr")
	v.SetDefault("quiz.default_question_count", 5)
	v.SetDefault("quiz.generation_cache_ttl", "24h")

	v.SetDefault("auth.jwt.access_token_ttl", "15m")
	v.SetDefault("auth.jwt.refresh_token_ttl", "168h")
	v.SetDefault("auth.demo_email", "demo@example.com")
	v.SetDefault("auth.demo_password", "demo123")
	v.SetDefault("auth.demo_name", "Demo Öğretmen")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:   v.GetString("llm.provider"),
			Timeout:    v.GetDuration("llm.timeout"),
			Gemini:     providerConfig(v, "gemini"),
			OpenAI:     providerConfig(v, "openai"),
			Anthropic:  providerConfig(v, "anthropic"),
			OpenRouter: providerConfig(v, "openrouter"),
			Ollama:     providerConfig(v, "ollama"),
			Retry: RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
		},
		Quiz: QuizConfig{
			Locale:               v.GetString("quiz.locale"),
			DefaultQuestionCount: v.GetInt("quiz.default_question_count"),
			GenerationCacheTTL:   v.GetDuration("quiz.generation_cache_ttl"),
		},
		Auth: AuthConfig{
			JWT: JWTConfig{
				SecretKey:       v.GetString("auth.jwt.secret_key"),
				AccessTokenTTL:  v.GetDuration("auth.jwt.access_token_ttl"),
				RefreshTokenTTL: v.GetDuration("auth.jwt.refresh_token_ttl"),
			},
			DemoEmail:    v.GetString("auth.demo_email"),
			DemoPassword: v.GetString("auth.demo_password"),
			DemoName:     v.GetString("auth.demo_name"),
		},
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func providerConfig(v *viper.Viper, name string) ProviderConfig {
	return ProviderConfig{
		APIKey:  v.GetString("llm." + name + ".api_key"),
		Model:   v.GetString("llm." + name + ".model"),
		BaseURL: v.GetString("llm." + name + ".base_url"),
	}
}

// applyEnvOverrides honours the conventional unprefixed variables for secrets and endpoints.
func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.Gemini.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.OpenAI.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.LLM.Anthropic.APIKey = key
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		cfg.LLM.OpenRouter.APIKey = key
	}
	if server := os.Getenv("LLM_SERVER"); server != "" {
		cfg.LLM.Ollama.BaseURL = server
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		cfg.Auth.JWT.SecretKey = secret
	}
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
