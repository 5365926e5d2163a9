package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"askpilot/internal/app"
	"askpilot/internal/transport/http/middleware"
	"askpilot/pkg/log"
)

// WebHandler serves the HTML surface: login and registration forms and
// the question/history page.
type WebHandler struct {
	authService *app.AuthService
	askService  *app.AskService
	history     *app.HistoryService
}

func NewWebHandler(authService *app.AuthService, askService *app.AskService, history *app.HistoryService) *WebHandler {
	return &WebHandler{
		authService: authService,
		askService:  askService,
		history:     history,
	}
}

func (h *WebHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *WebHandler) Login(c *gin.Context) {
	username, uok := c.GetPostForm("Username")
	password, pok := c.GetPostForm("Password")
	if !uok || !pok {
		c.String(http.StatusBadRequest, "missing required form fields")
		return
	}

	if err := h.authService.Authenticate(username, password); err != nil {
		var message string
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			message = "Username does not exist"
		case errors.Is(err, app.ErrWrongPassword), errors.Is(err, app.ErrInvalidInput):
			message = "Incorrect password"
		default:
			log.Errorf("login for %q failed: %v", username, err)
			message = "Login failed, try again"
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"message": message})
		return
	}

	username = strings.TrimSpace(username)
	session := sessions.Default(c)
	session.Set(middleware.SessionUsernameKey, username)
	session.Set(middleware.SessionTimestampKey, time.Now().UTC().Format(time.RFC3339))
	if err := session.Save(); err != nil {
		log.Errorf("save session for %q failed: %v", username, err)
		c.String(http.StatusInternalServerError, "session error")
		return
	}

	if err := h.history.InitIfAbsent(c.Request.Context(), username); err != nil {
		log.Warnf("init history for %q failed: %v", username, err)
	}

	c.Redirect(http.StatusFound, "/home")
}

func (h *WebHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *WebHandler) Register(c *gin.Context) {
	username, uok := c.GetPostForm("Username")
	password, pok := c.GetPostForm("Password")
	if !uok || !pok {
		c.String(http.StatusBadRequest, "missing required form fields")
		return
	}

	err := h.authService.Register(username, password)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "register.html", gin.H{
			"message": "Successfully registered as " + strings.TrimSpace(username),
		})
	case errors.Is(err, app.ErrUsernameExists):
		c.HTML(http.StatusOK, "register.html", gin.H{"message": "Username already exists"})
	case errors.Is(err, app.ErrInvalidInput):
		c.String(http.StatusBadRequest, "missing required form fields")
	default:
		log.Errorf("register %q failed: %v", username, err)
		c.String(http.StatusInternalServerError, "registration error")
	}
}

func (h *WebHandler) Home(c *gin.Context) {
	username := c.GetString(middleware.ContextUsernameKey)

	entries, err := h.history.Get(c.Request.Context(), username)
	if err != nil {
		log.Errorf("load history for %q failed: %v", username, err)
		c.String(http.StatusInternalServerError, "history error")
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"username": username,
		"history":  entries,
	})
}

// Ask handles the home form POST. It never renders directly: success
// always redirects back to GET /home so a refresh cannot resubmit.
func (h *WebHandler) Ask(c *gin.Context) {
	username := c.GetString(middleware.ContextUsernameKey)

	question, qok := c.GetPostForm("Question")
	rawURLs, uok := c.GetPostForm("Urls")
	if !qok || !uok || strings.TrimSpace(question) == "" {
		c.String(http.StatusBadRequest, "missing required form fields")
		return
	}

	if _, err := h.askService.Ask(c.Request.Context(), username, question, rawURLs); err != nil {
		log.Errorf("ask for %q failed: %v", username, err)
		c.String(http.StatusInternalServerError, "ask error")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionTimestampKey, time.Now().UTC().Format(time.RFC3339))
	if err := session.Save(); err != nil {
		log.Warnf("refresh session timestamp for %q failed: %v", username, err)
	}

	c.Redirect(http.StatusFound, "/home")
}
