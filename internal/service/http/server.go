package http

import (
	"github.com/gin-gonic/gin"
	"github.com/reusedev/media-hub/internal/service/http/handler"
	"github.com/reusedev/media-hub/internal/service/http/middleware"
)

func Serve(port string) {
	e := gin.New()
	initRouter(e)
	if err := e.Run(port); err != nil {
		panic(err)
	}
}

func initRouter(e *gin.Engine) {
	e.Use(gin.Recovery(), middleware.RequestLogger())
	v1 := e.Group("/v1")
	images := v1.Group("/images")
	{
		images.POST("", handler.UploadImage)
		images.POST("/batch", handler.BatchUpload)
		images.POST("/analyze", handler.AnalyzeImage)
		images.GET("", handler.GetImage)
		images.PATCH("/sort", handler.SortImage)
		images.DELETE("", handler.DeleteImage)
	}
	products := v1.Group("/products")
	{
		products.GET("/:id/images", handler.ListProductImages)
	}
}
