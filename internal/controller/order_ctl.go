package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/api/dto"
	"shopsmart/internal/middleware"
	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{orderService: s}
}

// List
// @Summary 订单列表
// @Description 返回当前用户已提交的订单（不含购物车），按时间倒序，带合计金额
// @Tags Order (订单)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Status + Orders"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /api/v1/order [get]
func (ctrl *OrderController) List(c *gin.Context) {
	orders, err := ctrl.orderService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Orders": orders})
}

// Submit
// @Summary 提交订单
// @Description 把购物车转成新订单并挂上收货信息，异步发确认邮件
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OrderSubmitReq true "订单 id + 收货信息 id"
// @Success 200 {object} map[string]interface{} "Status + Order"
// @Failure 400 {object} map[string]interface{} "购物车为空"
// @Failure 404 {object} map[string]interface{} "订单或收货信息不存在"
// @Router /api/v1/order [post]
func (ctrl *OrderController) Submit(c *gin.Context) {
	var req dto.OrderSubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := ctrl.orderService.Submit(c.Request.Context(), middleware.GetUserID(c), req.ID, req.ContactID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Order": order})
}
