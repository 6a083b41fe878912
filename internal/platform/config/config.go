package config

import (
	"os"
	"strconv"
)

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret     []byte
	TokenTTLHours int
}

type SMTPConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	BaseURL string // base URL used to build reset-password links
}

func LoadMongoConfig() MongoConfig {
	// URI: "mongodb://host:port" or a full replica-set connection string
	uri := "mongodb://127.0.0.1:27017"
	if envURI := os.Getenv("MONGODB_URI"); envURI != "" {
		uri = envURI
	}
	return MongoConfig{
		URI:      uri,
		Database: GetEnv("MONGODB_DATABASE", "minegocio"),
	}
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := defaultPort
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

func LoadAuthConfig() AuthConfig {
	secret := GetEnv("JWT_SECRET", "insecure-dev-secret-change-me")
	return AuthConfig{
		JWTSecret:     []byte(secret),
		TokenTTLHours: GetEnvAsInt("JWT_TTL_HOURS", 168), // 7 days
	}
}

func LoadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:    GetEnv("SMTP_HOST", ""),
		Port:    GetEnvAsInt("SMTP_PORT", 587),
		User:    GetEnv("SMTP_USER", ""),
		Pass:    GetEnv("SMTP_PASS", ""),
		From:    GetEnv("SMTP_FROM", ""),
		BaseURL: GetEnv("APP_BASE_URL", "http://localhost:3000"),
	}
}

// Helper to read an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
