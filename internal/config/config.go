package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env          string
	AppSecret    string
	Port         string
	SiteName     string
	SiteUrl      string
	DataPath     string
	TMDBAPIKey   string
	TMDBBaseURL  string
	CacheTTL     time.Duration
	CacheCleanup time.Duration
}

// Load 加载配置
func Load() *Config {
	// API 响应缓存：默认 5 分钟过期，每 10 分钟清理一次
	ttlMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "5"))
	cleanupMinutes, _ := strconv.Atoi(getEnv("CACHE_CLEANUP_MINUTES", "10"))

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	apiKey := getEnv("TMDB_API_KEY", "")
	if apiKey == "" {
		fmt.Println("【警告】未设置 TMDB_API_KEY，远程数据请求将全部失败。")
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		AppSecret:    appSecret,
		Port:         getEnv("PORT", "5006"),
		SiteName:     getEnv("SITE_NAME", "CineRate"),
		SiteUrl:      getEnv("SITE_URL", "http://localhost:5006"),
		DataPath:     getEnv("DATA_PATH", "./data/cinerate.db"),
		TMDBAPIKey:   apiKey,
		TMDBBaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		CacheTTL:     time.Duration(ttlMinutes) * time.Minute,
		CacheCleanup: time.Duration(cleanupMinutes) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
