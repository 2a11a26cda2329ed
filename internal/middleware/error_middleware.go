package middleware

import (
	"errors"
	"net/http"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/i18n"
	"linkpulse-go/response"

	"github.com/gin-gonic/gin"
)

// GlobalErrorMiddleware 全局错误中间件
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 如果有错误发生
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					// 消息可能是 i18n key（如 error.shortcode_invalid），能翻译就翻译
					translated := i18n.T(c.Request.Context(), appErr.Message, nil)
					c.AbortWithStatusJSON(appErr.Code, response.Error(translated))
					return
				}
			}

			// 默认处理未定义的错误
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error("系统内部错误"))
			return
		}
	}
}
