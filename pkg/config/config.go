package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// AppConfig 全局配置实例
var AppConfig *Config

// DefaultAPIVersion Shopify Admin API 默认版本
const DefaultAPIVersion = "2026-01"

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Shopify   ShopifyConfig   `yaml:"shopify"`
	Proxy     ProxyConfig     `yaml:"proxy"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Redis     RedisConfig     `yaml:"redis"`
	MongoDB   MongoDBConfig   `yaml:"mongodb"`
	Security  SecurityConfig  `yaml:"security"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         string        `yaml:"port" env:"PORT" default:"3001"`
	Mode         string        `yaml:"mode" env:"GIN_MODE" default:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
}

// ShopifyConfig 商店凭证配置
type ShopifyConfig struct {
	StoreDomain     string        `yaml:"store_domain" env:"SHOPIFY_STORE_DOMAIN"`
	AdminToken      string        `yaml:"admin_access_token" env:"SHOPIFY_ADMIN_ACCESS_TOKEN"`
	ClientID        string        `yaml:"client_id" env:"SHOPIFY_CLIENT_ID"`
	ClientSecret    string        `yaml:"client_secret" env:"SHOPIFY_CLIENT_SECRET"`
	APIVersion      string        `yaml:"api_version" env:"SHOPIFY_API_VERSION" default:"2026-01"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout" env:"UPSTREAM_TIMEOUT" default:"10s"`
}

// ProxyConfig 聚合层访问代理的配置
type ProxyConfig struct {
	URL     string        `yaml:"url" env:"PROXY_URL"`
	APIKey  string        `yaml:"api_key" env:"PROXY_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"QUERY_TIMEOUT" default:"15s"`
}

// DashboardConfig 看板刷新配置
type DashboardConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"REFRESH_INTERVAL" default:"5m"`
	Timezone        string        `yaml:"timezone" env:"DASHBOARD_TZ" default:"Europe/Paris"` // 按月聚合使用的时区
}

// RedisConfig Redis配置，Addr 为空时令牌只缓存在进程内
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" default:"0"`
	PoolSize int    `yaml:"pool_size" default:"10"`
}

// MongoDBConfig MongoDB配置，URI 为空时不记录代理调用
type MongoDBConfig struct {
	URI        string `yaml:"uri" env:"MONGO_URI"`
	Database   string `yaml:"database" default:"ojena_analytics"`
	Collection string `yaml:"collection" default:"proxy_calls"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	RateLimit      int      `yaml:"rate_limit" env:"RATE_LIMIT" default:"1000"` // 每分钟请求数
	JWTSecret      string   `yaml:"jwt_secret" env:"PROXY_JWT_SECRET"`
}

// InitConfig 初始化全局配置
func InitConfig() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load 按 默认值 -> 配置文件 -> 环境变量 的顺序加载配置
func Load() (*Config, error) {
	// 加载环境变量
	if err := loadEnv(); err != nil {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	config := &Config{}
	setDefaults(config)

	// 配置文件是可选的
	if err := loadFromFile(config); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load config file: %v", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// loadEnv 加载环境变量文件
func loadEnv() error {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFiles := []string{
		".env",
		".env.server",
		fmt.Sprintf(".env.%s", env),
		".env.local",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				return err
			}
		}
	}

	return nil
}

// setDefaults 设置默认值
func setDefaults(config *Config) {
	config.Server.Port = "3001"
	config.Server.Mode = "debug"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Shopify.APIVersion = DefaultAPIVersion
	config.Shopify.UpstreamTimeout = 10 * time.Second

	config.Proxy.Timeout = 15 * time.Second

	config.Dashboard.RefreshInterval = 5 * time.Minute
	config.Dashboard.Timezone = "Europe/Paris"

	config.Redis.DB = 0
	config.Redis.PoolSize = 10

	config.MongoDB.Database = "ojena_analytics"
	config.MongoDB.Collection = "proxy_calls"

	config.Security.AllowedOrigins = DefaultAllowedOrigins()
	config.Security.RateLimit = 1000
}

// loadFromFile 从配置文件加载
func loadFromFile(config *Config) error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

// loadFromEnv 从环境变量加载
func loadFromEnv(config *Config) error {
	// Server配置
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	// Shopify配置
	if domain := os.Getenv("SHOPIFY_STORE_DOMAIN"); domain != "" {
		config.Shopify.StoreDomain = domain
	}
	if token := os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"); token != "" {
		config.Shopify.AdminToken = token
	}
	if id := os.Getenv("SHOPIFY_CLIENT_ID"); id != "" {
		config.Shopify.ClientID = id
	}
	if secret := os.Getenv("SHOPIFY_CLIENT_SECRET"); secret != "" {
		config.Shopify.ClientSecret = secret
	}
	if version := os.Getenv("SHOPIFY_API_VERSION"); version != "" {
		config.Shopify.APIVersion = version
	}

	// 代理配置
	if url := os.Getenv("PROXY_URL"); url != "" {
		config.Proxy.URL = url
	}
	if key := os.Getenv("PROXY_API_KEY"); key != "" {
		config.Proxy.APIKey = key
	}

	durations := map[string]*time.Duration{
		"UPSTREAM_TIMEOUT": &config.Shopify.UpstreamTimeout,
		"QUERY_TIMEOUT":    &config.Proxy.Timeout,
		"REFRESH_INTERVAL": &config.Dashboard.RefreshInterval,
	}
	for key, dest := range durations {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dest = d
	}

	if tz := os.Getenv("DASHBOARD_TZ"); tz != "" {
		config.Dashboard.Timezone = tz
	}

	// Redis配置
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		config.Redis.DB = db
	}

	if uri := os.Getenv("MONGO_URI"); uri != "" {
		config.MongoDB.URI = uri
	}

	// 安全配置
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.Security.AllowedOrigins = ParseOrigins(origins)
	}
	if limit := os.Getenv("RATE_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		config.Security.RateLimit = n
	}
	if secret := os.Getenv("PROXY_JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}

	return nil
}

// validateConfig 验证配置，商店凭证的校验由各部署入口负责
func validateConfig(config *Config) error {
	// 验证端口号
	if _, err := strconv.Atoi(strings.TrimPrefix(config.Server.Port, ":")); err != nil {
		return fmt.Errorf("invalid server port: %s", config.Server.Port)
	}

	// 验证模式
	validModes := []string{"debug", "release", "test"}
	modeValid := false
	for _, mode := range validModes {
		if config.Server.Mode == mode {
			modeValid = true
			break
		}
	}
	if !modeValid {
		return fmt.Errorf("invalid server mode: %s", config.Server.Mode)
	}

	if config.Shopify.UpstreamTimeout <= 0 || config.Proxy.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	// 查询客户端缺少 apikey 时不会发起请求，所有看板数据都会变成模拟数据
	if config.Proxy.URL != "" && config.Proxy.APIKey == "" {
		return fmt.Errorf("PROXY_URL is set but PROXY_API_KEY is empty")
	}

	if config.Dashboard.RefreshInterval < time.Second {
		return fmt.Errorf("refresh interval too short: %s", config.Dashboard.RefreshInterval)
	}

	if _, err := time.LoadLocation(config.Dashboard.Timezone); err != nil {
		return fmt.Errorf("invalid dashboard timezone %q: %w", config.Dashboard.Timezone, err)
	}

	return nil
}

// Location 看板时区，加载失败时退回 time.Local
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetConfig 获取配置实例
func GetConfig() *Config {
	if AppConfig == nil {
		log.Fatal("config not initialized, call InitConfig() first")
	}
	return AppConfig
}

// IsProduction 判断是否为生产环境
func IsProduction() bool {
	return AppConfig != nil && AppConfig.Server.Mode == "release"
}
