package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TableName       string // no default: a missing table surfaces as a store error
	Region          string
	DynamoEndpoint  string // DynamoDB Local, e.g. http://localhost:8000
	AccessKey       string
	SecretKey       string
	StoreTimeoutMs  int
	HideStoreErrors bool
	LogLevel        string

	// local HTTP mode only
	Port           string
	AllowedOrigins []string
	EnsureTable    bool
	EnsureTableMs  int

	Lambda bool
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadConfig() Config {
	// .env is optional and only expected on developer machines
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("config: cannot read .env", "error", err)
	}

	return Config{
		TableName:       getenv("TABLE_NAME", ""),
		Region:          getenv("AWS_REGION", "eu-west-1"),
		DynamoEndpoint:  getenv("DYNAMODB_ENDPOINT", ""),
		AccessKey:       getenv("DYNAMODB_ACCESS_KEY", "local"),
		SecretKey:       getenv("DYNAMODB_SECRET_KEY", "local"),
		StoreTimeoutMs:  getenvInt("STORE_TIMEOUT_MS", 5000),
		HideStoreErrors: getenvBool("HIDE_STORE_ERRORS", false),
		LogLevel:        getenv("LOG_LEVEL", "info"),

		Port:           getenv("PORT", "8080"),
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		EnsureTable:    getenvBool("ENSURE_TABLE", false),
		EnsureTableMs:  getenvInt("ENSURE_TABLE_TIMEOUT_MS", 30000),

		Lambda: os.Getenv("AWS_LAMBDA_RUNTIME_API") != "",
	}
}
