package dto

// ==================== 合作方 ====================

// PartnerUpdateReq 价格表导入请求
type PartnerUpdateReq struct {
	URL string `json:"url" binding:"required"`
}

// PartnerStateReq 店铺接单状态开关
type PartnerStateReq struct {
	Status *bool `json:"status" binding:"required"`
}
