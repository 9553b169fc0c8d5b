// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Groq互換Chat Completions APIのデフォルト値。
const (
	defaultUpstreamEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	defaultUpstreamModel    = "llama-3.1-70b-versatile"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// コンポーネントはグローバル状態を参照せず、この構造体を受け取る。
type Config struct {
	// Database
	DatabaseURL string

	// Token
	JWTSecret     string
	TokenValidity time.Duration

	// Auth
	BcryptCost int

	// Upstream（Chat Completions API）
	UpstreamAPIKey   string
	UpstreamModel    string
	UpstreamEndpoint string
	UpstreamTimeout  time.Duration

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
// GROQ_API_KEYは意図的に必須としない: キー未設定の検出は
// ミールプラン生成リクエスト時に行う（認証等の機能はキーなしでも動作する）。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.TokenValidity = getEnvDuration("TOKEN_VALIDITY", 7*24*time.Hour)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 10)
	cfg.UpstreamAPIKey = os.Getenv("GROQ_API_KEY")
	cfg.UpstreamModel = getEnvString("GROQ_MODEL", defaultUpstreamModel)
	cfg.UpstreamEndpoint = getEnvString("GROQ_ENDPOINT", defaultUpstreamEndpoint)
	cfg.UpstreamTimeout = getEnvDuration("UPSTREAM_TIMEOUT", 60*time.Second)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
