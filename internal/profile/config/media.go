package config

import "time"

// Драйверы хранилища медиа.
const (
	MediaDriverLocal = "local"
	MediaDriverS3    = "s3"
)

// MediaConfig - загрузка аватаров и изображений проектов.
type MediaConfig struct {
	Driver     string `yaml:"driver" env:"PROFILE_MEDIA_DRIVER" env-default:"local"`
	RootDir    string `yaml:"root_dir" env:"PROFILE_MEDIA_ROOT_DIR" env-default:"./data/media"`
	PublicPath string `yaml:"public_path" env:"PROFILE_MEDIA_PUBLIC_PATH" env-default:"/media"`
	MaxSize    int64  `yaml:"max_size" env:"PROFILE_MEDIA_MAX_SIZE" env-default:"5242880"`
}

// UseS3 сообщает, что медиа и кеш резюме лежат в S3.
func (m *MediaConfig) UseS3() bool {
	return m.Driver == MediaDriverS3
}

// S3Config - объектное хранилище, совместимое с S3.
type S3Config struct {
	Region          string `yaml:"region" env:"PROFILE_S3_REGION" env-default:"us-east-1"`
	Bucket          string `yaml:"bucket" env:"PROFILE_S3_BUCKET" env-default:"devprofile"`
	Endpoint        string `yaml:"endpoint" env:"PROFILE_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `yaml:"access_key_id" env:"PROFILE_S3_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `yaml:"secret_access_key" env:"PROFILE_S3_SECRET_ACCESS_KEY" env-default:""`
	UsePathStyle    bool   `yaml:"use_path_style" env:"PROFILE_S3_USE_PATH_STYLE" env-default:"true"`
}

// RendererConfig - сервис конвертации HTML в PDF и кеш резюме.
type RendererConfig struct {
	URL          string        `yaml:"url" env:"PROFILE_RENDERER_URL" env-default:"http://localhost:3000"`
	Timeout      time.Duration `yaml:"timeout" env:"PROFILE_RENDERER_TIMEOUT" env-default:"30s"`
	ResumePrefix string        `yaml:"resume_prefix" env:"PROFILE_RENDERER_RESUME_PREFIX" env-default:"resumes"`
	CacheDir     string        `yaml:"cache_dir" env:"PROFILE_RENDERER_CACHE_DIR" env-default:"./data/cache"`
}
