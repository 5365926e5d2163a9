package http

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"askpilot/internal/bootstrap"
	"askpilot/internal/transport/http/handler"
	"askpilot/internal/transport/http/middleware"
)

// NewRouter wires both surfaces: the HTML form flow with cookie
// sessions and the JSON API with JWT auth.
func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	store := cookie.NewStore([]byte(app.Config.App.SessionSecret))
	router.Use(sessions.Sessions("askpilot_session", store))

	if app.Config.App.TemplateGlob != "" {
		router.LoadHTMLGlob(app.Config.App.TemplateGlob)
	}

	webHandler := handler.NewWebHandler(app.Auth, app.Ask, app.History)
	router.GET("/", webHandler.LoginForm)
	router.GET("/login", webHandler.LoginForm)
	router.POST("/login", webHandler.Login)
	router.GET("/register", webHandler.RegisterForm)
	router.POST("/register", webHandler.Register)

	home := router.Group("/home")
	home.Use(middleware.RequireSession())
	home.GET("", webHandler.Home)
	home.POST("", webHandler.Ask)

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	jwtExpiration := time.Duration(app.Config.Auth.JWTExpireMinute) * time.Minute
	authHandler := handler.NewAuthHandler(app.Auth, app.Config.Auth.JWTSecret, jwtExpiration)
	askHandler := handler.NewAskHandler(app.Ask, app.History)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	authed := v1.Group("/")
	authed.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	authed.POST("/ask", askHandler.Ask)
	authed.GET("/history", askHandler.History)

	return router
}
