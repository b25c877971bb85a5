package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/api/dto"
	"shopsmart/internal/service"
	"shopsmart/pkg/response"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// Register
// @Summary 注册账号
// @Description 注册买家或店铺账号，注册后账号未激活，需邮箱确认
// @Tags Auth (账号模块)
// @Accept json
// @Produce json
// @Param body body dto.RegisterReq true "注册信息"
// @Success 201 {object} map[string]interface{} "Status + 用户 ID"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 409 {object} map[string]interface{} "邮箱或用户名已占用"
// @Router /api/v1/user/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Type:      req.Type,
		Company:   req.Company,
		Position:  req.Position,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"Status": true, "id": user.ID})
}

// Login
// @Summary 登录
// @Description 校验邮箱和口令，返回持久令牌
// @Tags Auth (账号模块)
// @Accept json
// @Produce json
// @Param body body dto.LoginReq true "登录信息"
// @Success 200 {object} map[string]interface{} "Status + Token"
// @Failure 400 {object} map[string]interface{} "凭证错误或账号未激活"
// @Router /api/v1/user/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, gin.H{"Token": token})
}

// ConfirmEmail
// @Summary 确认邮箱
// @Description 用注册邮件中的令牌激活账号，令牌一次性
// @Tags Auth (账号模块)
// @Accept json
// @Produce json
// @Param body body dto.ConfirmEmailReq true "邮箱 + 令牌"
// @Success 200 {object} map[string]interface{} "Status"
// @Failure 400 {object} map[string]interface{} "令牌无效"
// @Router /api/v1/user/register/confirm_email [post]
func (ctrl *AuthController) ConfirmEmail(c *gin.Context) {
	var req dto.ConfirmEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ctrl.authService.ConfirmEmail(c.Request.Context(), req.Email, req.Token); err != nil {
		failFromErr(c, err)
		return
	}

	response.OK(c, nil)
}
