package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr       string
	MySQLDSN         string
	RedisAddr        string
	MinioEndpoint    string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioBucket      string
	ChallengesURL    string
	ChallengesAPIKey string
}

// loadConfig reads .env if present, then the environment, with local-dev
// defaults matching docker-compose.
func loadConfig() Config {
	godotenv.Load()

	return Config{
		ListenAddr:       getenv("LISTEN_ADDR", ":8080"),
		MySQLDSN:         getenv("MYSQL_DSN", "root:123456@tcp(127.0.0.1:3306)/promptmarket?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		MinioEndpoint:    getenv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey:   getenv("MINIO_ACCESS_KEY", "admin"),
		MinioSecretKey:   getenv("MINIO_SECRET_KEY", "password123"),
		MinioBucket:      getenv("MINIO_BUCKET", "prompt-images"),
		ChallengesURL:    getenv("CHALLENGES_URL", ""),
		ChallengesAPIKey: getenv("CHALLENGES_API_KEY", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
