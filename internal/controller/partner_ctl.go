package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/api/dto"
	"shopsmart/internal/middleware"
	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

type PartnerController struct {
	partnerService *service.PartnerService
}

func NewPartnerController(s *service.PartnerService) *PartnerController {
	return &PartnerController{partnerService: s}
}

// UpdatePriceList
// @Summary 导入价格表
// @Description 店铺账号从给定 URL 拉取 YAML 价格表，整表重建自家货架
// @Tags Partner (合作方)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PartnerUpdateReq true "价格表 URL"
// @Success 200 {object} map[string]interface{} "Status + 导入统计"
// @Failure 400 {object} map[string]interface{} "URL 非法或 YAML 解析失败"
// @Failure 403 {object} map[string]interface{} "非店铺账号"
// @Failure 502 {object} map[string]interface{} "上游拉取失败"
// @Router /api/v1/partner/update [post]
func (ctrl *PartnerController) UpdatePriceList(c *gin.Context) {
	var req dto.PartnerUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ctrl.partnerService.ImportFromURL(c.Request.Context(), middleware.GetUserID(c), req.URL)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{
		"Shop":       result.Shop,
		"Categories": result.Categories,
		"Listings":   result.Listings,
	})
}

// GetState
// @Summary 查看接单状态
// @Tags Partner (合作方)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Status + Shop"
// @Failure 404 {object} map[string]interface{} "店铺不存在"
// @Router /api/v1/partner/state [get]
func (ctrl *PartnerController) GetState(c *gin.Context) {
	shop, err := ctrl.partnerService.GetShop(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Shop": shop})
}

// UpdateState
// @Summary 切换接单状态
// @Description 关掉后店铺和它的货从公开目录里消失
// @Tags Partner (合作方)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PartnerStateReq true "status"
// @Success 200 {object} map[string]interface{} "Status + Shop"
// @Failure 404 {object} map[string]interface{} "店铺不存在"
// @Router /api/v1/partner/state [post]
func (ctrl *PartnerController) UpdateState(c *gin.Context) {
	var req dto.PartnerStateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	shop, err := ctrl.partnerService.UpdateShopState(c.Request.Context(), middleware.GetUserID(c), *req.Status)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Shop": shop})
}
