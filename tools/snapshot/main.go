// snapshot 对配置的代理执行一次视图聚合并打印 JSON，用于部署后的冒烟检查
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"ojena-analytics/pkg/config"
	"ojena-analytics/pkg/graphql"
	as "ojena-analytics/services/analytics_service"
)

func main() {
	view := flag.String("view", as.ViewExecutive, "视图名称: executive, influencer, revenue, products")
	pretty := flag.Bool("pretty", false, "格式化输出")
	timeout := flag.Duration("timeout", time.Minute, "整体超时")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}
	if cfg.Proxy.URL == "" {
		log.Printf("⚠️ 未配置 PROXY_URL，所有数据均为模拟数据")
	}

	svc := as.NewAnalyticsService(
		graphql.NewClient(cfg.Proxy.URL, cfg.Proxy.APIKey, cfg.Proxy.Timeout),
		as.WithLocation(cfg.Location()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	snapshot, err := svc.View(ctx, *view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %s\n", err, *view)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(snapshot); err != nil {
		log.Fatalf("❌ 输出失败: %v", err)
	}
}
