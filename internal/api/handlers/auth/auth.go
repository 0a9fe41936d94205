package auth

import (
	"net/http"

	authCore "kind-kitchen/internal/core/auth"
	"kind-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignupRequest 註冊請求
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler 認證處理程序
type Handler struct {
	service *authCore.Service
}

// NewHandler 創建新的認證處理程序
func NewHandler(service *authCore.Service) *Handler {
	return &Handler{service: service}
}

// HandleSignup POST /auth/signup 註冊
func (h *Handler) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "All fields required",
		})
		return
	}

	session, err := h.service.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeAuthError(c, err, "Signup failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"token":  session.Token,
		"data":   gin.H{"user": session.User},
	})
}

// HandleLogin POST /auth/login 登入
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Email and password required",
		})
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  session.Token,
		"data":   gin.H{"user": session.User},
	})
}

// writeAuthError 將服務層錯誤轉為對應的 HTTP 回應
func (h *Handler) writeAuthError(c *gin.Context, err error, fallback string) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": err.Error(),
		})
		return
	}

	switch err {
	case common.ErrEmailTaken:
		c.JSON(http.StatusConflict, gin.H{
			"status":  "fail",
			"message": "Email already registered",
		})
	case common.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "fail",
			"message": "Invalid email or password",
		})
	default:
		common.LogError("認證處理失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fallback,
		})
	}
}
