package dto

// ==================== 购物车 ====================

// BasketItemReq 购物车条目
type BasketItemReq struct {
	ProductInfoID int64 `json:"product_info_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required,min=1"`
}

// BasketItemsReq 批量新增/修改购物车条目
type BasketItemsReq struct {
	Items []BasketItemReq `json:"items" binding:"required,min=1,dive"`
}

// BasketDeleteReq 按 product_info_id 批量删除购物车条目
type BasketDeleteReq struct {
	Items []int64 `json:"items" binding:"required,min=1"`
}

// ==================== 订单 ====================

// OrderSubmitReq 提交订单
type OrderSubmitReq struct {
	ID        int64 `json:"id" binding:"required"`
	ContactID int64 `json:"contact_id" binding:"required"`
}
