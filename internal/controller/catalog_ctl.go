package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/repository"
	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

type CatalogController struct {
	catalogService *service.CatalogService
}

func NewCatalogController(s *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: s}
}

// queryInt 读取整型查询参数，缺省或非法时返回 0
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// ListCategories
// @Summary 品类列表
// @Description 公开接口，支持 page / page_size 分页
// @Tags Catalog (商品目录)
// @Produce json
// @Param page query int false "页码，从 1 开始"
// @Param page_size query int false "每页条数，默认 10，上限 100"
// @Success 200 {object} map[string]interface{} "Status + Count + Results"
// @Router /api/v1/categories [get]
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	categories, total, err := ctrl.catalogService.ListCategories(c.Request.Context(), queryInt(c, "page"), queryInt(c, "page_size"))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Count": total, "Results": categories})
}

// ListShops
// @Summary 店铺列表
// @Description 公开接口，只返回接单中的店铺
// @Tags Catalog (商品目录)
// @Produce json
// @Param page query int false "页码，从 1 开始"
// @Param page_size query int false "每页条数，默认 10，上限 100"
// @Success 200 {object} map[string]interface{} "Status + Count + Results"
// @Router /api/v1/shops [get]
func (ctrl *CatalogController) ListShops(c *gin.Context) {
	shops, total, err := ctrl.catalogService.ListShops(c.Request.Context(), queryInt(c, "page"), queryInt(c, "page_size"))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Count": total, "Results": shops})
}

// ListProducts
// @Summary 在售商品列表
// @Description 公开接口，可按 shop_id 和 category_id 过滤，只含接单中店铺的货
// @Tags Catalog (商品目录)
// @Produce json
// @Param shop_id query int false "店铺 ID"
// @Param category_id query int false "品类 ID"
// @Param page query int false "页码，从 1 开始"
// @Param page_size query int false "每页条数，默认 10，上限 100"
// @Success 200 {object} map[string]interface{} "Status + Count + Results"
// @Router /api/v1/products [get]
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	filter := repository.ProductInfoFilter{
		ShopID:     int64(queryInt(c, "shop_id")),
		CategoryID: int64(queryInt(c, "category_id")),
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "page_size"),
	}

	infos, total, err := ctrl.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Count": total, "Results": infos})
}
