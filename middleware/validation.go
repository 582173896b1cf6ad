package middleware

import (
	"errors"
	"io"
	"strings"

	"ojena-analytics/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormatBindError 把绑定/校验错误转换为可读消息
func FormatBindError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]string, len(ve))
		for i, fe := range ve {
			if fe.Param() != "" {
				out[i] = fe.Field() + " " + fe.Tag() + "=" + fe.Param()
			} else {
				out[i] = fe.Field() + " " + fe.Tag()
			}
		}
		return strings.Join(out, ", ")
	}
	// 检查是否是 EOF 错误
	if errors.Is(err, io.EOF) {
		return "请求体为空或格式不正确"
	}
	return err.Error()
}

// BindQuery 绑定并校验查询参数，失败时写出 400 并返回 false
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.Abort(c, response.INVALID_PARAMS, FormatBindError(err))
		return false
	}
	return true
}
