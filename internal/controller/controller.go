package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

// failFromErr 把业务错误翻译成 HTTP 状态码并写入统一信封
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		response.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUpstream):
		response.Fail(c, http.StatusBadGateway, err.Error())
	default:
		// 其余的业务/校验错误一律按 400 处理
		response.Fail(c, http.StatusBadRequest, err.Error())
	}
}
