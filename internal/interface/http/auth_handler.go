package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/runnershi/runnershi/internal/application"
	"github.com/runnershi/runnershi/pkg/response"
	"github.com/runnershi/runnershi/pkg/validation"
)

// AccountService is satisfied by application.Service.
type AccountService interface {
	Signup(ctx context.Context, in application.SignupInput) (*application.AuthResponse, error)
	Login(ctx context.Context, in application.LoginInput) (*application.AuthResponse, error)
}

type AuthHandler struct {
	Service AccountService
	Logger  logrus.FieldLogger
}

func NewAuthHandler(svc AccountService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Service: svc, Logger: logger}
}

type signupRequest struct {
	Email       string `json:"email" binding:"required,notblank,max=254,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Nickname    string `json:"nickname" binding:"required,nick"`
	CountryCode string `json:"countryCode" binding:"omitempty,max=2"`
	RegionCode  string `json:"regionCode" binding:"omitempty,max=20"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "signup", application.NewValidationError("invalid payload", err), validation.ToDetails(err))
		return
	}

	res, err := h.Service.Signup(c.Request.Context(), application.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		Nickname:    req.Nickname,
		CountryCode: req.CountryCode,
		RegionCode:  req.RegionCode,
	})
	if err != nil {
		h.fail(c, "signup", err, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "login", application.NewValidationError("invalid payload", err), validation.ToDetails(err))
		return
	}

	res, err := h.Service.Login(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(c, "login", err, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func statusFor(kind application.Kind) int {
	switch kind {
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindDuplicateEmail, application.KindDuplicateNickname:
		return http.StatusConflict
	case application.KindInvalidCredentials, application.KindNoLocalPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error, details any) {
	kind := application.KindOf(err)
	if kind == application.KindInternal && h.Logger != nil {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"ip":         clientIP(c),
			"op":         op,
		}).Error("request failed")
	}
	response.Error(c, statusFor(kind), string(kind), application.MessageOf(err), details)
}
