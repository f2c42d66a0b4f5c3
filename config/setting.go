package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type ServerConfig struct {
	Port            int    `koanf:"port" validate:"required"`
	Concurrency     int    `koanf:"concurrency" validate:"required,min=1"`
	BodyLimit       int    `koanf:"body_limit" validate:"required"`
	AppName         string `koanf:"app_name" validate:"required"`
	ShutdownTimeout int    `koanf:"shutdown_timeout"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleDatabase       Module = "database"
	ModuleS3             Module = "s3"
	ModuleCors           Module = "cors"
	ModuleServer         Module = "server"
	ModuleSetting        Module = "setting"
	ModuleUpload         Module = "upload"
	ModuleTeacher        Module = "teacher"
	ModuleTeacherType    Module = "teacher_type"
	ModuleEducationLevel Module = "education_level"
	ModuleSeed           Module = "seed"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver       string   `koanf:"driver" validate:"required,oneof=mysql postgres"`
	Host         string   `koanf:"host" validate:"required"`
	Port         int      `koanf:"port" validate:"required"`
	User         string   `koanf:"user" validate:"required"`
	Password     string   `koanf:"password"`
	Name         string   `koanf:"name" validate:"required"`
	SSLMode      string   `koanf:"sslmode"`
	MaxIdleConns int      `koanf:"max_idle_conns" validate:"required"`
	MaxOpenConns int      `koanf:"max_open_conns" validate:"required"`
	MaxLifetime  int      `koanf:"max_lifetime" validate:"required"`
	Replicas     []string `koanf:"replicas"`
	AutoMigrate  bool     `koanf:"auto_migrate"`
}

type CorsConfig struct {
	AllowOrigins []string `koanf:"allow_origins" validate:"required,min=1"`
	AllowMethods []string `koanf:"allow_methods" validate:"required"`
	AllowHeaders []string `koanf:"allow_headers" validate:"required"`
}

// S3Config targets MinIO or AWS. An empty bucket keeps uploads on local disk.
type S3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
}

// UploadConfig governs teacher images. Files on local disk are served under PublicPath.
type UploadConfig struct {
	LocalDir          string   `koanf:"local_dir" validate:"required"`
	PublicPath        string   `koanf:"public_path" validate:"required,startswith=/"`
	MaxImageBytes     int64    `koanf:"max_image_bytes" validate:"required,min=1"`
	AllowedExtensions []string `koanf:"allowed_extensions" validate:"required,min=1"`
}

type Config struct {
	Server    ServerConfig   `koanf:"server"`
	Database  DatabaseConfig `koanf:"database"`
	LogLevel  logLevel       `koanf:"log_level"`
	LogFormat string         `koanf:"log_format" validate:"omitempty,oneof=text json"`
	Dns       string         `koanf:"dns"`
	S3        S3Config       `koanf:"s3"`
	Cors      CorsConfig     `koanf:"cors"`
	Upload    UploadConfig   `koanf:"upload"`
}

func buildMySQLDSN(cfg DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

func buildPostgresDSN(cfg DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		sslMode,
	)
}

// BuildDSN returns the connection string for the configured driver.
func BuildDSN(cfg DatabaseConfig) string {
	if cfg.Driver == DriverPostgres {
		return buildPostgresDSN(cfg)
	}
	return buildMySQLDSN(cfg)
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8081,
			Concurrency:     256,
			BodyLimit:       8 * 1024 * 1024,
			AppName:         "teacher-management",
			ShutdownTimeout: 5,
		},
		Database: DatabaseConfig{
			Driver:       DriverMySQL,
			Host:         "127.0.0.1",
			Port:         3306,
			User:         "root",
			Password:     "",
			Name:         "teacher_management",
			MaxIdleConns: 5,
			MaxOpenConns: 20,
			MaxLifetime:  30,
		},
		LogLevel:  Info,
		LogFormat: "text",
		S3: S3Config{
			Endpoint: "http://localhost:9000",
			Region:   "us-east-1",
		},
		Cors: CorsConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		},
		Upload: UploadConfig{
			LocalDir:          "storage",
			PublicPath:        "/images",
			MaxImageBytes:     5 * 1024 * 1024,
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		},
	}
}

var (
	Cfg  = Default()
	once sync.Once
)

// Load reads defaults, then the YAML file at path (optional), then APP_ env vars.
// Nested keys use a double underscore: APP_SERVER__PORT -> server.port.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	// file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// env APP_SERVER__PORT
	if err := k.Load(env.Provider("APP_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	// bind
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Dns == "" {
		cfg.Dns = BuildDSN(cfg.Database)
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("config validation failed: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v config validation failed:\n", ModuleSetting))
	for _, e := range errs {
		sb.WriteString(
			fmt.Sprintf("  • %s: failed '%s' (value: %v)\n", e.Namespace(), e.Tag(), e.Value()),
		)
	}
	return errors.New(sb.String())
}

// Init loads an optional .env file and the config at path into Cfg.
func Init(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("%v: failed to load .env: %v", ModuleSetting, err)
	}
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

func init() {
	path := "config.yaml"
	if p := os.Getenv("APP_CONFIG_FILE"); p != "" {
		path = p
	}

	once.Do(func() {
		cfg, err := Load(path)
		if err != nil {
			log.Error(err.Error())
			return
		}
		Cfg = cfg
	})
}
