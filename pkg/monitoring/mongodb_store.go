package monitoring

import (
	"context"
	"log"
	"time"

	"ojena-analytics/mongodb"

	"github.com/gin-gonic/gin"
)

// HTTPMetric HTTP请求指标（简化版）
type HTTPMetric struct {
	Timestamp  time.Time `bson:"timestamp"`
	Method     string    `bson:"method"`
	Endpoint   string    `bson:"endpoint"`
	StatusCode int       `bson:"status_code"`
	Duration   float64   `bson:"duration"`
	UserAgent  string    `bson:"user_agent,omitempty"`
	ClientIP   string    `bson:"client_ip,omitempty"`
	RequestID  string    `bson:"request_id,omitempty"`
}

// ProxyCall 一次代理转发的记录
type ProxyCall struct {
	Timestamp  time.Time `bson:"timestamp"`
	RequestID  string    `bson:"request_id,omitempty"`
	Store      string    `bson:"store"`
	Operation  string    `bson:"operation"`
	StatusCode int       `bson:"status_code"`
	Duration   float64   `bson:"duration"`
	Error      string    `bson:"error,omitempty"`
}

// SaveHTTPMetric 保存HTTP指标到MongoDB
func SaveHTTPMetric(c *gin.Context, duration float64) {
	if !mongodb.IsEnabled() {
		return
	}

	metric := HTTPMetric{
		Timestamp:  time.Now(),
		Method:     c.Request.Method,
		Endpoint:   c.FullPath(),
		StatusCode: c.Writer.Status(),
		Duration:   duration,
		UserAgent:  c.GetHeader("User-Agent"),
		ClientIP:   c.ClientIP(),
		RequestID:  c.GetString("RequestID"),
	}

	insertAsync("HTTP指标", metric)
}

// SaveProxyCall 保存代理调用记录到MongoDB
func SaveProxyCall(call ProxyCall) {
	if !mongodb.IsEnabled() {
		return
	}
	if call.Timestamp.IsZero() {
		call.Timestamp = time.Now()
	}
	insertAsync("代理调用", call)
}

func insertAsync(kind string, doc interface{}) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("保存%s失败: %v", kind, r)
			}
		}()

		collection := mongodb.GetCollection()
		if collection == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := collection.InsertOne(ctx, doc); err != nil {
			log.Printf("保存%s到MongoDB失败: %v", kind, err)
		}
	}()
}
