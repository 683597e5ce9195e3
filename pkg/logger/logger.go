package logger

import (
	"os"

	"go.uber.org/zap"
)

// New uygulama logger'ını oluşturur ve global olarak kaydeder
func New() *zap.Logger {
	var logger *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(logger)
	return logger
}
