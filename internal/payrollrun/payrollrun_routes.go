package payrollrun

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/payroll-runs")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", middleware.RoleMiddleware("HR_ADMIN"), handler.Start)
		group.GET("/:id", middleware.RoleMiddleware("HR_ADMIN"), handler.Status)
		group.GET("/:id/watch", middleware.RoleMiddleware("HR_ADMIN"), handler.Watch)
		group.GET("/:id/results", middleware.RoleMiddleware("HR_ADMIN"), handler.Results)
		group.POST("/:id/reset", middleware.RoleMiddleware("HR_ADMIN"), handler.Reset)
	}
}
