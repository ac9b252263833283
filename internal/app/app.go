package app

import (
	"os"

	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payrollrun"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	registry := NewRegistry(db, gormDB, redisClient)

	router.Use(middleware.RequestID())

	settingsHandler := settings.NewHandler(registry.SettingsResolver)
	payrollHandler := payroll.NewHandler(registry.PayrollService)
	runHandler := payrollrun.NewHandler(registry.RunService)

	api := router.Group("/api/v1")
	{
		settings.RegisterRoutes(api, settingsHandler)
		payroll.RegisterRoutes(api, payrollHandler)
		payrollrun.RegisterRoutes(api, runHandler)
	}

	return nil
}
