package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"askpilot/internal/app"
	"askpilot/internal/pkg/jwtutil"
	"askpilot/internal/transport/http/response"
)

// AuthHandler serves the token-based API surface; the browser flow
// lives in WebHandler.
type AuthHandler struct {
	authService   *app.AuthService
	jwtSecret     string
	jwtExpiration time.Duration
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

func NewAuthHandler(authService *app.AuthService, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.authService.Register(req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "register failed")
		}
		return
	}

	response.OK(c, gin.H{"username": req.Username})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.authService.Authenticate(req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound), errors.Is(err, app.ErrWrongPassword):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "invalid username or password")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		}
		return
	}

	token, err := jwtutil.GenerateToken(h.jwtSecret, h.jwtExpiration, req.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		return
	}

	response.OK(c, gin.H{
		"token":    token,
		"username": req.Username,
	})
}
