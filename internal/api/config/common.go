package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Upload UploadConfig `mapstructure:"upload"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// UploadConfig 上传配置
type UploadConfig struct {
	Dir           string   `mapstructure:"dir"`            // 本地上传根目录
	MaxSizeMB     int64    `mapstructure:"max_size_mb"`    // 单文件大小上限 (MB)
	ImageTypes    []string `mapstructure:"image_types"`    // 缩略图允许的 MIME 白名单
	DocumentTypes []string `mapstructure:"document_types"` // 附件额外允许的文档 MIME 白名单
}

// MaxSizeBytes 返回以字节为单位的上传大小上限
func (c UploadConfig) MaxSizeBytes() int64 {
	return c.MaxSizeMB * 1024 * 1024
}
