package mongodb

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"ojena-analytics/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mu         sync.RWMutex
	client     *mongo.Client
	collection *mongo.Collection
)

// InitMongoDB 连接 MongoDB，URI 为空时不启用
func InitMongoDB(cfg config.MongoDBConfig) error {
	if cfg.URI == "" {
		log.Printf("⚠️ MongoDB 未配置，跳过代理调用记录")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mu.Lock()
	client = c
	collection = c.Database(cfg.Database).Collection(cfg.Collection)
	mu.Unlock()

	log.Printf("✅ MongoDB连接已初始化: %s.%s", cfg.Database, cfg.Collection)
	return nil
}

// IsEnabled 是否已连接
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return collection != nil
}

// GetCollection 代理调用记录集合，未启用时返回 nil
func GetCollection() *mongo.Collection {
	mu.RLock()
	defer mu.RUnlock()
	return collection
}

// CloseMongoDB 断开连接
func CloseMongoDB(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	collection = nil
	return err
}
