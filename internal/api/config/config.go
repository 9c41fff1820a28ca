package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件与环境变量加载配置并填充到 Cfg
// 优先级：环境变量 > 配置文件 > 默认值
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setDefaults()
	bindEnvs()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// 配置文件缺失时仅依赖默认值与环境变量
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 逗号分隔的环境变量列表
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	cfg.Upload.ImageTypes = splitList(cfg.Upload.ImageTypes)
	cfg.Upload.DocumentTypes = splitList(cfg.Upload.DocumentTypes)

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost"})
	viper.SetDefault("mongo.url", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "knowledge_base")
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.max_size_mb", 50)
	viper.SetDefault("upload.image_types", []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
	})
	viper.SetDefault("upload.document_types", []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"text/plain",
		"text/csv",
	})
}

func bindEnvs() {
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("cors.allowed_origins", "ORIGINS")
	_ = viper.BindEnv("mongo.url", "MONGODB_URL")
	_ = viper.BindEnv("mongo.database", "DATABASE_NAME")
	_ = viper.BindEnv("upload.dir", "UPLOAD_DIR")
	_ = viper.BindEnv("upload.max_size_mb", "MAX_FILE_SIZE_MB")
	_ = viper.BindEnv("upload.image_types", "ALLOWED_IMAGE_TYPES")
	_ = viper.BindEnv("upload.document_types", "ALLOWED_DOCUMENT_TYPES")
}

// splitList 兼容 "a,b,c" 形式的单元素列表
func splitList(in []string) []string {
	if len(in) != 1 || !strings.Contains(in[0], ",") {
		return in
	}
	parts := strings.Split(in[0], ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
