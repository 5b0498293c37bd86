package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.POST("", handler.Create)
		employees.GET("/:id", handler.GetByID)
		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}
