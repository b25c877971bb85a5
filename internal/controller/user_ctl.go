package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/api/dto"
	"shopsmart/internal/middleware"
	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{userService: s}
}

// ==================== 个人信息 ====================

// GetDetails
// @Summary 查看个人信息
// @Description 返回当前用户的资料和全部收货信息
// @Tags User (用户模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Status + User"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /api/v1/user/info [get]
func (ctrl *UserController) GetDetails(c *gin.Context) {
	user, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"User": user})
}

// UpdateDetails
// @Summary 修改个人信息
// @Description 只改请求里出现的字段，改口令时按同样的口令规则校验
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProfileUpdateReq true "要修改的字段"
// @Success 200 {object} map[string]interface{} "Status + User"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /api/v1/user/info [post]
func (ctrl *UserController) UpdateDetails(c *gin.Context) {
	var req dto.ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ctrl.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), service.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Password:  req.Password,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"User": user})
}

// ==================== 收货信息 ====================

// ListContacts
// @Summary 收货信息列表
// @Tags User (用户模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Status + Contacts"
// @Router /api/v1/user/contact [get]
func (ctrl *UserController) ListContacts(c *gin.Context) {
	contacts, err := ctrl.userService.ListContacts(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Contacts": contacts})
}

// CreateContact
// @Summary 新增收货信息
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ContactCreateReq true "收货信息"
// @Success 201 {object} map[string]interface{} "Status + Contact"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /api/v1/user/contact [post]
func (ctrl *UserController) CreateContact(c *gin.Context) {
	var req dto.ContactCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := ctrl.userService.CreateContact(c.Request.Context(), middleware.GetUserID(c), service.ContactInput{
		City:        req.City,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		FlatNumber:  req.FlatNumber,
		Phone:       req.Phone,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"Status": true, "Contact": contact})
}

// UpdateContact
// @Summary 修改收货信息
// @Description 只能改自己的收货信息，空字段不改
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ContactUpdateReq true "id + 要修改的字段"
// @Success 200 {object} map[string]interface{} "Status + Contact"
// @Failure 404 {object} map[string]interface{} "收货信息不存在"
// @Router /api/v1/user/contact [put]
func (ctrl *UserController) UpdateContact(c *gin.Context) {
	var req dto.ContactUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := ctrl.userService.UpdateContact(c.Request.Context(), middleware.GetUserID(c), req.ID, service.ContactInput{
		City:        req.City,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		FlatNumber:  req.FlatNumber,
		Phone:       req.Phone,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Contact": contact})
}

// DeleteContacts
// @Summary 删除收货信息
// @Description items 为逗号分隔的 id 串，只删属于自己的记录
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ContactDeleteReq true "items"
// @Success 200 {object} map[string]interface{} "Status + 删除数量"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /api/v1/user/contact [delete]
func (ctrl *UserController) DeleteContacts(c *gin.Context) {
	var req dto.ContactDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := parseIDList(req.Items)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "items must be a comma-separated list of ids")
		return
	}

	deleted, err := ctrl.userService.DeleteContacts(c.Request.Context(), middleware.GetUserID(c), ids)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Deleted": deleted})
}

// parseIDList 解析 "1,2,3" 形式的 id 串
func parseIDList(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
