package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	API         APIConfig
	Image       ImageConfig
	Camera      CameraConfig
	Storage     StorageConfig
	RedisConfig RedisConfig
	Chat        ChatConfig
	CacheEnable bool   `env:"CACHE_ENABLE"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50" validate:"gt=0"`
	ScanRateLimit   int           `env:"SERVER_SCAN_RATE_PER_MINUTE" envDefault:"30" validate:"gt=0"`
	CORSOrigins     []string      `env:"SERVER_CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// APIConfig points at the remote inference service.
type APIConfig struct {
	BaseURL string        `env:"NEXT_PUBLIC_API_URL" envDefault:"http://localhost:8000/api" validate:"required,url"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"60s"`
}

type ImageConfig struct {
	Quality      float64 `env:"IMAGE_QUALITY" envDefault:"0.8" validate:"gt=0,lte=1"`
	MaxDimension int     `env:"IMAGE_MAX_DIMENSION" envDefault:"1024" validate:"gt=0"`
	MaxUploadMB  int64   `env:"IMAGE_MAX_UPLOAD_MB" envDefault:"10" validate:"gt=0"`
	MaxPixels    int     `env:"IMAGE_MAX_PIXELS" envDefault:"40000000" validate:"gt=0"`
}

type CameraConfig struct {
	FFmpegPath    string `env:"CAMERA_FFMPEG_PATH" envDefault:"ffmpeg"`
	V4L2CtlPath   string `env:"CAMERA_V4L2CTL_PATH" envDefault:"v4l2-ctl"`
	RearDevice    int    `env:"CAMERA_REAR_DEVICE" envDefault:"0" validate:"gte=-1"`
	FrontDevice   int    `env:"CAMERA_FRONT_DEVICE" envDefault:"-1" validate:"gte=-1"`
	DefaultFacing string `env:"CAMERA_FACING" envDefault:"environment" validate:"oneof=user environment"`
	VideoSize     string `env:"CAMERA_VIDEO_SIZE" envDefault:"1280x720"`
	TorchControl  string `env:"CAMERA_TORCH_CONTROL"`
}

type StorageConfig struct {
	Engine     string `env:"STORAGE_ENGINE" envDefault:"json" validate:"oneof=memory json sqlite redis"`
	Path       string `env:"STORAGE_PATH" envDefault:"data/chilliguard-storage.json"`
	Name       string `env:"STORAGE_NAME" envDefault:"chilliguard-storage" validate:"required"`
	MaxHistory int    `env:"STORAGE_MAX_HISTORY" envDefault:"50" validate:"gt=0"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

type ChatConfig struct {
	Delay time.Duration `env:"CHAT_REPLY_DELAY" envDefault:"1500ms" validate:"gte=0"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
