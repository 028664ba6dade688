package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server        Server        `yaml:"server"`
	Logger        Logger        `yaml:"logger"`
	PostgresDB    PostgresDB    `yaml:"db"`
	Auth          Auth          `yaml:"auth"`
	RedisSessions RedisSessions `yaml:"sessions"`
	Blog          Blog          `yaml:"blog"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type Logger struct {
	Level     string   `yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
}

type PostgresDB struct {
	Addr     string `yaml:"addr"`
	Username string `env:"POSTGRES_USER"     env-required:"true" yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	DB       string `env:"POSTGRES_DB"       env-required:"true" yaml:"db"`
	SSLmode  string `yaml:"sslmode"`
	MaxConns string `yaml:"maxConns"`
	Reload   bool   `yaml:"reload"`
	Version  int    `yaml:"version"`
}

type Auth struct {
	SessionTTL    time.Duration `yaml:"sessionTTL"`
	ConfirmTTL    time.Duration `yaml:"confirmTTL"`
	Secret        string        `env:"SECRET" env-required:"true" yaml:"secret"`
	SecureCookies bool          `yaml:"secureCookies"`
}

type RedisSessions struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Blog holds the page sizes used by the feed, comment threads and
// the social graph listings.
type Blog struct {
	PostsPerPage     int `yaml:"postsPerPage"`
	CommentsPerPage  int `yaml:"commentsPerPage"`
	FollowersPerPage int `yaml:"followersPerPage"`
}

func New(configPath string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	if cfg.Blog.PostsPerPage <= 0 {
		cfg.Blog.PostsPerPage = 20
	}

	if cfg.Blog.CommentsPerPage <= 0 {
		cfg.Blog.CommentsPerPage = 30
	}

	if cfg.Blog.FollowersPerPage <= 0 {
		cfg.Blog.FollowersPerPage = 50
	}

	return cfg, nil
}
