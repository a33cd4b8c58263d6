package config

import (
	"github.com/Flogerbe/HelloCSEFlorian/pkg/database"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/logging"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/middleware"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/storage"
)

var databaseEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSL_MODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
	AutoMigrate:     "DATABASE_AUTO_MIGRATE",
}

var loggingEnv = &logging.Env{
	Level:     "LOGGING_LEVEL",
	Format:    "LOGGING_FORMAT",
	AddSource: "LOGGING_ADD_SOURCE",
}

var storageEnv = &storage.Env{
	Backend:       "STORAGE_BACKEND",
	BasePath:      "STORAGE_BASE_PATH",
	MaxUploadSize: "STORAGE_MAX_UPLOAD_SIZE",
	S3Bucket:      "STORAGE_S3_BUCKET",
	S3Region:      "STORAGE_S3_REGION",
	S3Endpoint:    "STORAGE_S3_ENDPOINT",
	S3AccessKey:   "STORAGE_S3_ACCESS_KEY",
	S3SecretKey:   "STORAGE_S3_SECRET_KEY",
	S3PathStyle:   "STORAGE_S3_USE_PATH_STYLE",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}
