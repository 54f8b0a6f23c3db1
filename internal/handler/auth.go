package handler

import (
	"net/http"

	"buddyremind/internal/logger"
	"buddyremind/internal/middleware"
	"buddyremind/internal/model"
	"buddyremind/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please provide name, email and password")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, user)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please provide an email and password")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", "email", req.Email)
		fail(c, err)
		return
	}
	h.sendToken(c, user)
}

// GET /api/auth/logout
//
// Tokens are stateless, so logout is a client-side discard; the endpoint
// exists so the client has a uniform call to make.
func (h *AuthHandler) Logout(c *gin.Context) {
	okMessage(c, "logged out successfully", gin.H{})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Get(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

// GET /api/auth/verify-email/:token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.auth.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "email verified successfully", gin.H{})
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please provide an email")
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "email sent", gin.H{})
}

// PUT /api/auth/reset-password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please provide a new password")
		return
	}
	user, err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, user)
}

// PUT /api/auth/update-details
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req model.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	user, err := h.auth.UpdateDetails(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

// PUT /api/auth/update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please provide current and new passwords")
		return
	}
	user, err := h.auth.UpdatePassword(c.Request.Context(), callerID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, user)
}

func (h *AuthHandler) sendToken(c *gin.Context, user *model.User) {
	token, err := middleware.IssueToken(user.ID, user.Email)
	if err != nil {
		fail(c, err)
		return
	}
	authOK(c, token, user)
}
