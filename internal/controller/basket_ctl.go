package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/api/dto"
	"shopsmart/internal/middleware"
	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

type BasketController struct {
	basketService *service.BasketService
}

func NewBasketController(s *service.BasketService) *BasketController {
	return &BasketController{basketService: s}
}

// Get
// @Summary 查看购物车
// @Description 返回购物车条目和合计金额，空购物车返回空列表
// @Tags Basket (购物车)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Status + Basket"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /api/v1/basket [get]
func (ctrl *BasketController) Get(c *gin.Context) {
	view, err := ctrl.basketService.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Basket": view})
}

// AddItems
// @Summary 批量加入购物车
// @Description 重复的 (购物车, 货) 组合会整体报冲突
// @Tags Basket (购物车)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BasketItemsReq true "条目列表"
// @Success 201 {object} map[string]interface{} "Status + 创建数量"
// @Failure 404 {object} map[string]interface{} "货不存在"
// @Failure 409 {object} map[string]interface{} "条目已在购物车"
// @Router /api/v1/basket [post]
func (ctrl *BasketController) AddItems(c *gin.Context) {
	var req dto.BasketItemsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := ctrl.basketService.AddItems(c.Request.Context(), middleware.GetUserID(c), toItemInputs(req.Items))
	if err != nil {
		failFromErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"Status": true, "Created": created})
}

// UpdateItems
// @Summary 批量修改购物车数量
// @Tags Basket (购物车)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BasketItemsReq true "条目列表"
// @Success 200 {object} map[string]interface{} "Status + 更新数量"
// @Failure 404 {object} map[string]interface{} "条目不在购物车"
// @Router /api/v1/basket [put]
func (ctrl *BasketController) UpdateItems(c *gin.Context) {
	var req dto.BasketItemsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := ctrl.basketService.UpdateItems(c.Request.Context(), middleware.GetUserID(c), toItemInputs(req.Items))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Updated": updated})
}

// RemoveItems
// @Summary 批量移出购物车
// @Description 按 product_info_id 删除，不存在的条目静默跳过
// @Tags Basket (购物车)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BasketDeleteReq true "product_info_id 列表"
// @Success 200 {object} map[string]interface{} "Status + 删除数量"
// @Router /api/v1/basket [delete]
func (ctrl *BasketController) RemoveItems(c *gin.Context) {
	var req dto.BasketDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := ctrl.basketService.RemoveItems(c.Request.Context(), middleware.GetUserID(c), req.Items)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Deleted": deleted})
}

func toItemInputs(items []dto.BasketItemReq) []service.BasketItemInput {
	inputs := make([]service.BasketItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, service.BasketItemInput{
			ProductInfoID: it.ProductInfoID,
			Quantity:      it.Quantity,
		})
	}
	return inputs
}
