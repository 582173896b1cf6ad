package main

import (
	"log"
	"net/http"

	"ojena-analytics/pkg/config"
	"ojena-analytics/shopify"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}

	creds := shopify.Credentials{
		Domain:       cfg.Shopify.StoreDomain,
		AccessToken:  cfg.Shopify.AdminToken,
		ClientID:     cfg.Shopify.ClientID,
		ClientSecret: cfg.Shopify.ClientSecret,
		APIVersion:   cfg.Shopify.APIVersion,
	}
	// 函数部署不因凭证缺失退出，每次请求返回 500
	if missing := creds.Missing(); missing.Any() {
		log.Printf("⚠️ [shopify-proxy] 凭证缺失: %s", missing)
	}

	tokens := shopify.NewTokenCache(creds, shopify.WithHTTPClient(&http.Client{Timeout: cfg.Shopify.UpstreamTimeout}))
	admin := shopify.NewAdminClient(creds, tokens, shopify.WithUpstreamTimeout(cfg.Shopify.UpstreamTimeout))

	h := NewHandler(creds, admin, cfg.Security.AllowedOrigins, cfg.Security.JWTSecret)
	lambda.Start(h.Handle)
}
