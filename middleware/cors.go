package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"ojena-analytics/pkg/config"

	"github.com/gin-gonic/gin"
)

// Cors 基于白名单的跨域中间件，未命中白名单时不写 Allow-Origin
func Cors(settings config.CorsSettings) gin.HandlerFunc {
	methods := strings.Join(settings.AllowedMethods, ", ")
	headers := strings.Join(settings.AllowedHeaders, ", ")
	exposed := strings.Join(settings.ExposedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// 检查是否为允许的来源
		if config.IsAllowedOrigin(origin, settings.AllowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", methods)
		c.Writer.Header().Set("Access-Control-Allow-Headers", headers)
		c.Writer.Header().Set("Access-Control-Expose-Headers", exposed)

		if settings.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if settings.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(settings.MaxAge))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
