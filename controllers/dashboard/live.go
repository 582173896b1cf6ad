package dashboard

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"ojena-analytics/pkg/config"
	"ojena-analytics/pkg/response"
	as "ojena-analytics/services/analytics_service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
)

var activeStreams int64

// ViewSource 产生页面快照
type ViewSource interface {
	View(ctx context.Context, name string) (interface{}, error)
}

// LiveController 定时重算视图并通过 WebSocket 推送，属于轮询而不是上游推送
type LiveController struct {
	views    ViewSource
	interval time.Duration
	upgrader websocket.Upgrader
}

// Frame 推送给看板的一帧
type Frame struct {
	View      string      `json:"view"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewLiveController(views ViewSource, interval time.Duration, cors config.CorsSettings) *LiveController {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LiveController{
		views:    views,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// 非浏览器客户端不带 Origin
				return origin == "" || config.IsAllowedOrigin(origin, cors.AllowedOrigins)
			},
		},
	}
}

func knownView(name string) bool {
	for _, v := range as.ViewNames {
		if v == name {
			return true
		}
	}
	return false
}

// Stream GET /ws/views/:view
func (l *LiveController) Stream(c *gin.Context) {
	name := c.Param("view")
	if !knownView(name) {
		response.Error(c, response.NOT_FOUND, as.ErrUnknownView.Error()+": "+name)
		return
	}

	conn, err := l.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ [live] WebSocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	n := atomic.AddInt64(&activeStreams, 1)
	defer atomic.AddInt64(&activeStreams, -1)
	log.Printf("✅ [live] 订阅视图 %s, 当前连接数: %d", name, n)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 读循环只处理控制帧，连接关闭时结束推送
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() error {
		data, err := l.views.View(ctx, name)
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(Frame{View: name, Timestamp: time.Now(), Data: data})
	}

	if err := push(); err != nil {
		log.Printf("❌ [live] 推送 %s 失败: %v", name, err)
		return
	}

	refresh := time.NewTicker(l.interval)
	defer refresh.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[live] 视图 %s 连接已关闭", name)
			return
		case <-refresh.C:
			if err := push(); err != nil {
				log.Printf("❌ [live] 推送 %s 失败: %v", name, err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
