package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     string // DBポート（5432）

	JWTSecret string // JWT署名シークレット

	GoEnv      string // dev/prod
	BusinessTZ string // 業務タイムゾーン（タイムスタンプに使う）
}

// Loadは環境変数から読む
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     os.Getenv("POSTGRES_PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:      os.Getenv("GO_ENV"),
		BusinessTZ: os.Getenv("BUSINESS_TZ"),
	}

	//必須チェック
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}
	if cfg.BusinessTZ == "" {
		cfg.BusinessTZ = "Asia/Ho_Chi_Minh"
	}

	return cfg, nil
}
