package main

import (
	"designer/internal/api"

	"github.com/sirupsen/logrus"
)

// @title Designer API
// @version 1.0
// @description Проекты и каталог модулей для планировщика мебели
// @BasePath /
func main() {
	logrus.Info("App start")
	api.StartServer()
	logrus.Info("App terminated")
}
