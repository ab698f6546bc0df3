package route

import (
	"cafe-api/controller"
	"cafe-api/utils"

	"github.com/gin-gonic/gin"
)

func CafeRoutes(router *gin.Engine, ctl *controller.CafeController, apiKey string) {
	router.GET("/random", ctl.GetRandomCafe)
	router.GET("/all", ctl.GetAllCafes)
	router.GET("/search", ctl.SearchCafe)
	router.GET("/cafes/:id", ctl.GetCafeByID)
	router.GET("/export", ctl.ExportCafes)
	router.PATCH("/update-price/:id", ctl.UpdateCoffeePrice)

	protected := router.Group("/")
	protected.Use(utils.APIKeyMiddleware(apiKey))
	{
		protected.POST("/add", ctl.AddCafe)
		protected.POST("/add/excel", ctl.BulkAddCafes)
		protected.DELETE("/report-closed/:id", ctl.DeleteCafe)
	}
}
