package config

import (
	"strings"
)

// CorsSettings CORS相关配置
type CorsSettings struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

// DefaultAllowedOrigins 本地开发时看板的地址
func DefaultAllowedOrigins() []string {
	return []string{"http://localhost:4028"}
}

// ParseOrigins 解析逗号分隔的域名列表
func ParseOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		// 清理空格
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// GetCorsConfig 获取CORS配置，两种部署共用同一份白名单
func GetCorsConfig(allowedOrigins []string) CorsSettings {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins()
	}

	return CorsSettings{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Origin",
			"Content-Type",
			"Content-Length",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Client-Info",
			"Apikey",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"X-Request-ID",
		},
		AllowCredentials: false,
		MaxAge:           3600,
	}
}

// IsAllowedOrigin 检查来源是否被允许，支持 "*" 与 "*.example.com"
func IsAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		// 支持通配符子域名匹配
		if strings.HasPrefix(allowed, "*.") {
			domain := strings.TrimPrefix(allowed, "*")
			if strings.HasSuffix(origin, domain) {
				return true
			}
		}
	}

	return false
}
