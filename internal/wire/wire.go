package wire

import (
	"Chronicle/internal/api"
	"Chronicle/internal/api/config"
	"Chronicle/internal/api/handler"
	"Chronicle/internal/pkg/blobstore"
	"Chronicle/internal/repository"
	"Chronicle/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *mongo.Database
	Store  *blobstore.Store
}

// BuildApplication 显式构造依赖，不使用包级单例
func BuildApplication(db *mongo.Database, store *blobstore.Store, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)

	postService := service.NewPostService(postRepo)
	fileService := service.NewFileService(cfg.Upload, store)

	handlers := &api.HandlersGroup{
		PostHandler: handler.NewPostHandler(postService),
		FileHandler: handler.NewFileHandler(postService, fileService),
	}

	router := api.SetupRouter(handlers, cfg)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
		Store:  store,
	}, nil
}
