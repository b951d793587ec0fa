package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/spf13/viper"
)

const (
	defaultPort      = "3000"
	defaultModel     = "doubao-1-5-pro-32k-250115"
	defaultAITimeout = 30 * time.Second
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Log      LogConfig
}

// MissingError 列出启动时缺失的必需环境变量。
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Keys, ", ")
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	v := newViper()

	var missing []string
	// require returns the first non-blank value as set; callers trim where
	// surrounding spaces carry no meaning.
	require := func(keys ...string) string {
		for _, key := range keys {
			if value := v.GetString(key); strings.TrimSpace(value) != "" {
				return value
			}
		}
		missing = append(missing, keys[0])
		return ""
	}

	apiKey := strings.TrimSpace(require("ARK_API_KEY", "AI_API_KEY"))
	dbURI := strings.TrimSpace(require("DATABASE_URI", "MONGO_URI"))
	adminPassword := require("ADMIN_PASSWORD")
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	server, err := loadServerConfig(v)
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig(v, apiKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		AI:       ai,
		Database: DatabaseConfig{URI: dbURI},
		Admin:    AdminConfig{Password: adminPassword},
		Log: LogConfig{
			Level:  strings.TrimSpace(v.GetString("LOG_LEVEL")),
			Format: strings.TrimSpace(v.GetString("LOG_FORMAT")),
		},
	}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("AI_MODEL", defaultModel)
	v.SetDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("ARK_REGION", "cn-beijing")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	return v
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DatabaseConfig 描述消息存储的连接信息。
type DatabaseConfig struct {
	URI string
}

// AdminConfig 保存管理员口令，只在启动时读取一次。
type AdminConfig struct {
	Password string
}

// LogConfig 控制日志级别与输出格式。
type LogConfig struct {
	Level  string
	Format string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig(v *viper.Viper) (ServerConfig, error) {
	port := strings.TrimSpace(v.GetString("PORT"))
	if port == "" {
		port = defaultPort
	}

	var origins []string
	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":3000" 或 "127.0.0.1:3000"。
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Region      string
	Timeout     time.Duration
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if c.APIKey == "" || c.Model == "" {
		return nil, fmt.Errorf("ark api key and model are required")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig(v *viper.Viper, apiKey string) (AIConfig, error) {
	temperature, err := parseOptionalFloat(v, "ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloat(v, "ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalInt(v, "ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeout, err := parseDuration(v, "AI_TIMEOUT", defaultAITimeout)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      apiKey,
		Model:       strings.TrimSpace(v.GetString("AI_MODEL")),
		BaseURL:     strings.TrimSpace(v.GetString("ARK_BASE_URL")),
		Region:      strings.TrimSpace(v.GetString("ARK_REGION")),
		Timeout:     timeout,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// parseDuration 接受 "30s" 形式或纯秒数。
func parseDuration(v *viper.Viper, key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue, nil
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloat(v *viper.Viper, key string) (*float64, error) {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalInt(v *viper.Viper, key string) (*int, error) {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
