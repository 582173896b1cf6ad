package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"ojena-analytics/controllers/dashboard"
	"ojena-analytics/controllers/health"
	"ojena-analytics/controllers/proxy"
	"ojena-analytics/middleware"
	"ojena-analytics/mongodb"
	"ojena-analytics/pkg/config"
	"ojena-analytics/pkg/graphql"
	"ojena-analytics/pkg/monitoring"
	"ojena-analytics/redis"
	"ojena-analytics/router"
	as "ojena-analytics/services/analytics_service"
	"ojena-analytics/shopify"

	"github.com/gin-gonic/gin"
)

// 构建时注入的变量
var (
	Version            = "dev"
	BuildTime          = "unknown"
	GitCommit          = "unknown"
	GoVersion          = "unknown"
	DefaultServiceName = "ojena-analytics"
)

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// 处理命令行参数
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "-v":
			fmt.Printf("OJENA Analytics\n")
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
			fmt.Printf("Go Version: %s\n", GoVersion)
			return
		case "-help", "--help", "-h":
			fmt.Printf("OJENA Analytics - 商店凭证代理与看板聚合服务\n\n")
			fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
			fmt.Printf("Options:\n")
			fmt.Printf("  -version, -v     显示版本信息\n")
			fmt.Printf("  -help, -h        显示帮助信息\n\n")
			fmt.Printf("Environment Variables:\n")
			fmt.Printf("  SHOPIFY_STORE_DOMAIN         商店域名 (必填)\n")
			fmt.Printf("  SHOPIFY_ADMIN_ACCESS_TOKEN   Admin 令牌，或使用下面两项\n")
			fmt.Printf("  SHOPIFY_CLIENT_ID            应用 Client ID\n")
			fmt.Printf("  SHOPIFY_CLIENT_SECRET        应用 Client Secret\n")
			fmt.Printf("  PROXY_URL                    聚合层访问的代理地址 (默认进程内直连)\n")
			fmt.Printf("  PORT                         服务端口 (默认: 3001)\n")
			fmt.Printf("  REDIS_ADDR                   令牌共享缓存 (可选)\n")
			fmt.Printf("  MONGO_URI                    代理调用记录 (可选)\n")
			return
		}
	}

	serviceName := getEnv("SERVICE_NAME", DefaultServiceName)

	if err := config.InitConfig(); err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}
	cfg := config.GetConfig()

	creds := shopify.Credentials{
		Domain:       cfg.Shopify.StoreDomain,
		AccessToken:  cfg.Shopify.AdminToken,
		ClientID:     cfg.Shopify.ClientID,
		ClientSecret: cfg.Shopify.ClientSecret,
		APIVersion:   cfg.Shopify.APIVersion,
	}
	// 独立服务部署时凭证缺失直接退出
	if missing := creds.Missing(); missing.Any() {
		log.Fatalf("❌ Shopify 凭证缺失: %s", missing)
	}

	log.Printf("启动 %s (商店: %s, 端口: %s)...", serviceName, creds.Domain, cfg.Server.Port)

	tokenOpts := []shopify.TokenOption{
		shopify.WithHTTPClient(&http.Client{Timeout: cfg.Shopify.UpstreamTimeout}),
	}
	if cfg.Redis.Addr != "" {
		if err := redis.InitRedis(cfg.Redis); err != nil {
			log.Printf("⚠️ Redis 不可用，令牌只缓存在进程内: %v", err)
		} else {
			tokenOpts = append(tokenOpts, shopify.WithTokenStore(redis.NewTokenStore(redis.GetClient())))
			log.Printf("✅ 令牌缓存使用 Redis")
		}
	}

	if cfg.MongoDB.URI != "" {
		if err := mongodb.InitMongoDB(cfg.MongoDB); err != nil {
			log.Printf("⚠️ MongoDB 初始化失败，不记录代理调用: %v", err)
		}
	}

	tokens := shopify.NewTokenCache(creds, tokenOpts...)
	admin := shopify.NewAdminClient(creds, tokens, shopify.WithUpstreamTimeout(cfg.Shopify.UpstreamTimeout))

	// 聚合层默认在进程内直连上游，配置 PROXY_URL 时走代理
	var querier graphql.Querier = admin
	if cfg.Proxy.URL != "" {
		querier = graphql.NewClient(cfg.Proxy.URL, cfg.Proxy.APIKey, cfg.Proxy.Timeout)
		log.Printf("聚合层通过代理访问: %s", cfg.Proxy.URL)
	}
	analytics := as.NewAnalyticsService(querier, as.WithLocation(cfg.Location()))

	corsSettings := config.GetCorsConfig(cfg.Security.AllowedOrigins)

	gin.SetMode(cfg.Server.Mode)
	app := gin.New()

	// 添加全局中间件
	app.Use(middleware.Recovery())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.Performance())
	app.Use(middleware.RateLimit(cfg.Security.RateLimit))
	app.Use(middleware.Cors(corsSettings))

	// 添加 Prometheus 监控中间件
	app.Use(monitoring.PrometheusMiddleware())

	router.Init(app, router.Controllers{
		Proxy:     proxy.NewProxyController(admin, creds),
		Health:    health.NewHealthController(serviceName, cfg.Server.Mode, creds.Domain, creds.APIVersion, tokens),
		Dashboard: dashboard.NewDashboardController(analytics),
		Live:      dashboard.NewLiveController(analytics, cfg.Dashboard.RefreshInterval, corsSettings),
	})

	// 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("服务器启动在端口 :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("正在关闭服务器...")

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("服务器强制关闭: %v", err)
	}

	// 关闭Redis连接
	if err := redis.CloseRedis(); err != nil {
		log.Printf("关闭Redis失败: %v", err)
	}
	if err := mongodb.CloseMongoDB(ctx); err != nil {
		log.Printf("关闭MongoDB失败: %v", err)
	}

	log.Printf("服务器已安全关闭")
}
