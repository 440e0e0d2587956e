package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 上传资源公共访问前缀，如 /uploads
	UploadedAssetsBaseURL string `mapstructure:"uploaded_assets_base_url"`

	// 上传配置
	UploadMaxSizeMB int `mapstructure:"upload_max_size_mb"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// 存储配置：public 分区存放文章封面，private 分区存放参考文件
	StoragePublicType       string `mapstructure:"storage_public_type"`
	StoragePublicLocalPath  string `mapstructure:"storage_public_local_path"`
	StoragePrivateType      string `mapstructure:"storage_private_type"`
	StoragePrivateLocalPath string `mapstructure:"storage_private_local_path"`

	// MinIO 配置（两个分区共用同一实例，bucket 分开）
	MinioEndpoint        string `mapstructure:"minio_endpoint"`
	MinioAccessKeyID     string `mapstructure:"minio_access_key_id"`
	MinioSecretAccessKey string `mapstructure:"minio_secret_access_key"`
	MinioUseSSL          bool   `mapstructure:"minio_use_ssl"`
	MinioPublicBucket    string `mapstructure:"minio_public_bucket"`
	MinioPrivateBucket   string `mapstructure:"minio_private_bucket"`

	// WebDAV 配置
	WebDAVURL         string `mapstructure:"webdav_url"`
	WebDAVUsername    string `mapstructure:"webdav_username"`
	WebDAVPassword    string `mapstructure:"webdav_password"`
	WebDAVPublicRoot  string `mapstructure:"webdav_public_root"`
	WebDAVPrivateRoot string `mapstructure:"webdav_private_root"`

	// JWT 配置
	JwtSecret    string `mapstructure:"jwt_secret"`
	JwtExpiresIn string `mapstructure:"jwt_expires_in"`

	// 缓存配置
	CacheType          string        `mapstructure:"cache_type"`
	CacheRedisAddr     string        `mapstructure:"cache_redis_addr"`
	CacheRedisPassword string        `mapstructure:"cache_redis_password"`
	CacheRedisDB       int           `mapstructure:"cache_redis_db"`
	CacheReferenceTTL  time.Duration `mapstructure:"cache_reference_ttl"`

	// 限流配置
	RateLimitApiRPS     float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitApiBurst   int           `mapstructure:"rate_limit_api_burst"`
	RateLimitAuthRPS    float64       `mapstructure:"rate_limit_auth_rps"`
	RateLimitAuthBurst  int           `mapstructure:"rate_limit_auth_burst"`
	RateLimitExpireTime time.Duration `mapstructure:"rate_limit_expire_time"`
}

// Addr 服务器监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UploadMaxBytes 单文件上传大小上限（字节）
func (c *Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxSizeMB) << 20
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")
	viper.SetDefault("uploaded_assets_base_url", "/uploads")

	// 上传配置默认值
	viper.SetDefault("upload_max_size_mb", 5)

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "spacebar")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	// 存储配置默认值
	viper.SetDefault("storage_public_type", "local")
	viper.SetDefault("storage_public_local_path", "./data/uploads/public")
	viper.SetDefault("storage_private_type", "local")
	viper.SetDefault("storage_private_local_path", "./data/uploads/private")

	viper.SetDefault("minio_endpoint", "")
	viper.SetDefault("minio_access_key_id", "")
	viper.SetDefault("minio_secret_access_key", "")
	viper.SetDefault("minio_use_ssl", false)
	viper.SetDefault("minio_public_bucket", "spacebar-public")
	viper.SetDefault("minio_private_bucket", "spacebar-private")

	viper.SetDefault("webdav_url", "")
	viper.SetDefault("webdav_username", "")
	viper.SetDefault("webdav_password", "")
	viper.SetDefault("webdav_public_root", "spacebar/public")
	viper.SetDefault("webdav_private_root", "spacebar/private")

	// JWT 配置默认值
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("jwt_expires_in", "30m")

	// 缓存配置默认值
	viper.SetDefault("cache_type", "memory")
	viper.SetDefault("cache_redis_addr", "localhost:6379")
	viper.SetDefault("cache_redis_password", "")
	viper.SetDefault("cache_redis_db", 0)
	viper.SetDefault("cache_reference_ttl", "10m")

	// 限流配置默认值
	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_auth_rps", 5.0)
	viper.SetDefault("rate_limit_auth_burst", 10)
	viper.SetDefault("rate_limit_expire_time", "10m")
}
