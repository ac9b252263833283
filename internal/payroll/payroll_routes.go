package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/payrolls")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/calculate", middleware.RoleMiddleware("HR_ADMIN"), handler.Calculate)
		group.GET("/:id", middleware.RoleMiddleware("HR_ADMIN"), handler.GetByID)
		group.GET("/period/:periodId", middleware.RoleMiddleware("HR_ADMIN"), handler.GetAllByPeriod)
		group.PATCH("/:id/approve", middleware.RoleMiddleware("HR_ADMIN"), handler.Approve)
		group.PATCH("/:id/pay", middleware.RoleMiddleware("HR_ADMIN"), handler.MarkPaid)
	}
}
