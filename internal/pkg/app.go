package pkg

import (
	"fmt"

	_ "designer/docs"
	"designer/internal/app/config"
	"designer/internal/app/handler"
	"designer/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
	Auth    *middleware.AuthMiddleware
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, auth *middleware.AuthMiddleware) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
		Auth:    auth,
	}
}

// Setup регистрирует документацию и маршруты
func (a *Application) Setup() {
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	a.Handler.RegisterRoutes(a.Router, a.Auth)
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Setup()

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
