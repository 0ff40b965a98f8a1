// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 起動時に1回だけ読み込み、以降は変更しない。
type Config struct {
	Env string

	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectAttempts int

	// 1クライアントあたりの1分間のリクエスト上限
	RateLimitGeneral int

	LogLevel string

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration
}

// LookupFunc は環境変数の参照関数。os.LookupEnvと同じシグネチャ。
type LookupFunc func(key string) (string, bool)

// Load はプロセスの環境変数からConfigを読み込む。
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom はlookupを通して設定値を読み込む。
// 必須項目が空の場合はエラーを返す。数値や期間として解釈できない値はデフォルトに戻す。
func LoadFrom(lookup LookupFunc) (*Config, error) {
	e := env{lookup: lookup}

	databaseURL := e.str("DATABASE_URL", "")
	if databaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: [DATABASE_URL]")
	}

	return &Config{
		Env:               e.str("ENV", "local"),
		DatabaseURL:       databaseURL,
		DBMaxOpenConns:    e.int("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    e.int("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: e.duration("DB_CONN_MAX_LIFETIME", time.Hour),
		DBConnectAttempts: e.int("DB_CONNECT_ATTEMPTS", 5),
		RateLimitGeneral:  e.int("RATE_LIMIT_GENERAL", 120),
		LogLevel:          e.str("LOG_LEVEL", "info"),
		ServerPort:        e.str("SERVER_PORT", "8080"),
		ShutdownTimeout:   e.duration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}, nil
}

type env struct {
	lookup LookupFunc
}

// str は空文字を未設定と同じに扱う。
func (e env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (e env) int(key string, def int) int {
	n, err := strconv.Atoi(e.str(key, ""))
	if err != nil {
		return def
	}
	return n
}

func (e env) duration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(e.str(key, ""))
	if err != nil {
		return def
	}
	return d
}
