package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"github.com/lenddesk/inventory-service/config"
	"github.com/lenddesk/inventory-service/internal/app"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using process env")
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("app run ", err)
	}
}
