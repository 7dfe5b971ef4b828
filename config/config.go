package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig       `envPrefix:"TASKBOX_APP_"`
	Server    ServerConfig    `envPrefix:"TASKBOX_SERVER_"`
	Log       LogConfig       `envPrefix:"TASKBOX_LOG_"`
	Database  DatabaseConfig  `envPrefix:"TASKBOX_DATABASE_"`
	Session   SessionConfig   `envPrefix:"TASKBOX_SESSION_"`
	Mail      MailConfig      `envPrefix:"TASKBOX_MAIL_"`
	Auth      AuthConfig      `envPrefix:"TASKBOX_AUTH_"`
	Tasks     TasksConfig     `envPrefix:"TASKBOX_TASKS_"`
	RateLimit RateLimitConfig `envPrefix:"TASKBOX_RATELIMIT_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"taskbox"`
	URL  string `env:"URL" envDefault:"http://localhost:8080"`
	Env  string `env:"ENV" envDefault:"development"`
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"8080"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver       string `env:"DRIVER" envDefault:"sqlite"`
	DSN          string `env:"DSN" envDefault:"taskbox.db"`
	AutoMigrate  bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS" envDefault:"5"`
}

type SessionConfig struct {
	Store    string        `env:"STORE" envDefault:"database"`
	Name     string        `env:"NAME" envDefault:"taskbox_session"`
	MaxAge   time.Duration `env:"MAX_AGE" envDefault:"720h"`
	Path     string        `env:"PATH" envDefault:"/"`
	Domain   string        `env:"DOMAIN" envDefault:""`
	Secure   bool          `env:"SECURE" envDefault:"false"`
	HttpOnly bool          `env:"HTTP_ONLY" envDefault:"true"`
	SameSite string        `env:"SAME_SITE" envDefault:"lax"`
}

type MailConfig struct {
	Host         string `env:"HOST" envDefault:"localhost"`
	Port         int    `env:"PORT" envDefault:"587"`
	Username     string `env:"USERNAME" envDefault:""`
	Password     string `env:"PASSWORD" envDefault:""`
	Encryption   string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress  string `env:"FROM_ADDRESS" envDefault:"noreply@localhost.local"`
	FromName     string `env:"FROM_NAME" envDefault:"taskbox"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates/mail"`
}

type AuthConfig struct {
	BcryptCost              int           `env:"BCRYPT_COST" envDefault:"12"`
	VerificationTokenLength int           `env:"VERIFICATION_TOKEN_LENGTH" envDefault:"32"`
	VerificationExpiry      time.Duration `env:"VERIFICATION_EXPIRY" envDefault:"24h"`
}

type TasksConfig struct {
	MaxPerUser      int `env:"MAX_PER_USER" envDefault:"100"`
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" envDefault:"100"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE" envDefault:"20"`
	Period  time.Duration `env:"PERIOD" envDefault:"1m"`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	return env.Parse(cfg)
}
