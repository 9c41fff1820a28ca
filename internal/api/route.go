package api

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/api/middleware"
	"Chronicle/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		blogGroup := apiGroup.Group("/blog")
		{
			// 公共接口，仅暴露已发布内容
			blogGroup.GET("/posts", group.PostHandler.GetPublishedPosts)
			blogGroup.GET("/posts/:post_id", group.PostHandler.GetPost)

			// 管理接口 (按路由路径区分，无身份校验)
			adminGroup := blogGroup.Group("/admin")
			{
				adminGroup.GET("/posts", group.PostHandler.GetAllPosts)
				adminGroup.POST("/posts", group.PostHandler.CreatePost)
				adminGroup.PUT("/posts/:post_id", group.PostHandler.UpdatePost)
				adminGroup.DELETE("/posts/:post_id", group.PostHandler.DeletePost)

				adminGroup.POST("/posts/:post_id/thumbnail", group.FileHandler.UploadPostThumbnail)
				adminGroup.POST("/posts/:post_id/attachments", group.FileHandler.UploadPostAttachment)
				adminGroup.DELETE("/posts/:post_id/attachments/:filename", group.FileHandler.RemoveAttachment)

				adminGroup.POST("/upload/thumbnail", group.FileHandler.UploadThumbnail)
				adminGroup.POST("/upload/attachment", group.FileHandler.UploadAttachment)
			}
		}
	}

	uploadsGroup := r.Group("/uploads")
	{
		uploadsGroup.GET("/thumbnails/:filename", group.FileHandler.ServeThumbnail)
		uploadsGroup.GET("/attachments/:filename", group.FileHandler.ServeAttachment)
	}

	return r
}
