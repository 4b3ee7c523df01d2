package main

import (
	"lalazar/config"
	"lalazar/di"
	"lalazar/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
