package handler

import (
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"
	"HeartSnaps/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	AuthService service.IAuthService
}

func (a *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	{
		auth.POST("/code", context.Wrap(a.RequestCode))
		auth.POST("/login", context.Wrap(a.Login))
	}
}

func (a *Auth) RequestCode(c *gin.Context) error {
	var req types.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	if err := a.AuthService.RequestCode(c.Request.Context(), req.Email); err != nil {
		return err
	}

	// 无论邮箱是否有后台角色都返回成功
	response.Success(c, gin.H{"sent": true})
	return nil
}

func (a *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	token, err := a.AuthService.Login(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		return err
	}

	response.Success(c, types.LoginResponse{AccessToken: token})
	return nil
}
