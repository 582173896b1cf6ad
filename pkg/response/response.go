package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一错误码定义
const (
	SUCCESS           = 200
	DEGRADED          = 206
	ERROR             = 500
	INVALID_PARAMS    = 20001
	AUTH_ERROR        = 20002
	NOT_FOUND         = 20003
	TOO_MANY_REQUESTS = 20005
	INTERNAL_ERROR    = 20006
)

// 错误码消息映射
var codeMsg = map[int]string{
	SUCCESS:           "OK",
	DEGRADED:          "上游不可用，已返回模拟数据",
	ERROR:             "服务器内部错误",
	INVALID_PARAMS:    "请求参数错误",
	AUTH_ERROR:        "认证失败",
	NOT_FOUND:         "资源不存在",
	TOO_MANY_REQUESTS: "请求过于频繁",
	INTERNAL_ERROR:    "内部服务错误",
}

// Response 统一响应结构
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	OriginUrl string      `json:"originUrl"`
}

// 获取错误码对应的消息
func GetMsg(code int) string {
	msg, exist := codeMsg[code]
	if exist {
		return msg
	}
	return codeMsg[ERROR]
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, Response{
		Code:      SUCCESS,
		Message:   GetMsg(SUCCESS),
		Data:      data,
		OriginUrl: c.Request.URL.Path,
	})
}

// Degraded 数据来自模拟表时的响应，HTTP 状态仍为 200
func Degraded(c *gin.Context, data interface{}, reason string) {
	write(c, http.StatusOK, Response{
		Code:      DEGRADED,
		Message:   GetMsg(DEGRADED),
		Data:      data,
		Error:     reason,
		OriginUrl: c.Request.URL.Path,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message ...string) {
	write(c, httpStatus(code), Response{
		Code:      code,
		Message:   pickMsg(code, message),
		Error:     "error",
		OriginUrl: c.Request.URL.Path,
	})
}

// ErrorWithData 带数据的错误响应
func ErrorWithData(c *gin.Context, code int, data interface{}, message ...string) {
	write(c, httpStatus(code), Response{
		Code:      code,
		Message:   pickMsg(code, message),
		Data:      data,
		Error:     "error",
		OriginUrl: c.Request.URL.Path,
	})
}

// Abort 中断请求并返回错误
func Abort(c *gin.Context, code int, message ...string) {
	Error(c, code, message...)
	c.Abort()
}

func pickMsg(code int, message []string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return GetMsg(code)
}

func httpStatus(code int) int {
	switch code {
	case INVALID_PARAMS:
		return http.StatusBadRequest
	case AUTH_ERROR:
		return http.StatusUnauthorized
	case NOT_FOUND:
		return http.StatusNotFound
	case TOO_MANY_REQUESTS:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func write(c *gin.Context, status int, resp Response) {
	c.Set("response", resp)
	c.JSON(status, resp)
}
