package settings

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/settings/payroll")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", middleware.RoleMiddleware("HR_ADMIN"), handler.GetCurrent)
		group.PUT("", middleware.RoleMiddleware("HR_ADMIN"), handler.Update)
	}
}
