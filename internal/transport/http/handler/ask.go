package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"askpilot/internal/app"
	"askpilot/internal/transport/http/middleware"
	"askpilot/internal/transport/http/response"
)

type AskHandler struct {
	askService *app.AskService
	history    *app.HistoryService
}

type askRequest struct {
	Question string   `json:"question" binding:"required"`
	URLs     []string `json:"urls"`
}

func NewAskHandler(askService *app.AskService, history *app.HistoryService) *AskHandler {
	return &AskHandler{askService: askService, history: history}
}

func (h *AskHandler) Ask(c *gin.Context) {
	username := c.GetString(middleware.ContextUsernameKey)
	if username == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	entries, err := h.askService.Ask(c.Request.Context(), username, req.Question, strings.Join(req.URLs, ","))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}

	response.OK(c, gin.H{"entries": entries})
}

func (h *AskHandler) History(c *gin.Context) {
	username := c.GetString(middleware.ContextUsernameKey)
	if username == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	entries, err := h.history.Get(c.Request.Context(), username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load history failed")
		return
	}

	response.OK(c, gin.H{"entries": entries})
}
