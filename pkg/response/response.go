package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 所有接口统一返回 {"Status": bool, ...} 信封
// 成功时附带业务字段，失败时附带 Errors

// OK 成功响应，payload 中的字段平铺进信封
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"Status": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail 失败响应
func Fail(c *gin.Context, httpStatus int, errs interface{}) {
	c.JSON(httpStatus, gin.H{
		"Status": false,
		"Errors": errs,
	})
}

// AbortFail 失败响应并中断后续 handler（中间件用）
func AbortFail(c *gin.Context, httpStatus int, errs interface{}) {
	Fail(c, httpStatus, errs)
	c.Abort()
}
