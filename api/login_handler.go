package api

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/internal/auth"
	"github.com/gin-gonic/gin"
)

// LoginHandler 登录处理器
type LoginHandler struct {
	loginService *auth.LoginService
}

// NewLoginHandler 创建登录处理器
func NewLoginHandler(loginService *auth.LoginService) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
	}
}

type userAuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
}

// LoginHandlerFunc user login
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	if h.loginService == nil {
		common.RespondError(c, http.StatusInternalServerError, "Login service not initialized")
		return
	}

	var req userAuthRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginService.Login(req.Username, req.Password)
	if err != nil {
		if err.Error() == "invalid credentials" {
			common.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondSuccessMessage(c, "Login successful", loginResponse{
		AccessToken:       "Bearer " + result.AccessToken,
		AccessTokenExpiry: result.AccessTokenExpiry.Unix(),
	})
}
