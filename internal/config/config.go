package config

import "os"

type DashboardServiceConfig struct {
	Port        string
	Env         string
	DataDir     string
	SeedDir     string
	LogDir      string
	AdminCfg    AdminConfig
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	MinioCfg    MinioConfig
	RabbitMQCfg RabbitMQConfig
}

type AdminConfig struct {
	Username string
	Password string
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioURL       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
	Enabled        string
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Enabled  string
}

func New() *DashboardServiceConfig {
	return &DashboardServiceConfig{
		Port:    getEnvOrDefault("PORT", "3001"),
		Env:     getEnvOrDefault("APP_ENV", "development"),
		DataDir: getEnvOrDefault("DATA_DIR", "data"),
		SeedDir: getEnvOrDefault("SEED_DIR", "seed"),
		LogDir:  getEnvOrDefault("LOG_DIR", "log"),
		AdminCfg: AdminConfig{
			Username: getEnvOrDefault("ADMIN_USER", "admin"),
			Password: getEnvOrDefault("ADMIN_PASSWORD", "admin123"),
		},
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "dashboard_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		MinioCfg: MinioConfig{
			MinioURL:       getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9000"),
			MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
			Enabled:        getEnvOrDefault("MINIO_ENABLED", "false"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Enabled:  getEnvOrDefault("RABBITMQ_ENABLED", "false"),
		},
	}
}

func (c *DashboardServiceConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
