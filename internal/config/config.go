package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultPath = "./configs/.env"

type Config struct {
	GRPCServerHost string `env:"GRPC_SERVER_HOST" env-default:"0.0.0.0"`
	GRPCServerPort int    `env:"GRPC_SERVER_PORT" env-default:"9090"`
	RESTServerHost string `env:"REST_SERVER_HOST" env-default:"0.0.0.0"`
	RESTServerPort int    `env:"REST_SERVER_PORT" env-default:"8080"`

	LogLevel string `env:"LOG_LEVEL" env-default:"debug"`

	AdminID       string `env:"ADMIN_ID" env-default:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" env-default:"1234"`

	// Storage is either "memory" or "redis".
	Storage        string `env:"STORAGE" env-default:"memory"`
	RedisAddr      string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" env-default:"reservations"`

	// EventsEndpoint is a ZeroMQ endpoint, e.g. tcp://*:5556. Empty logs events instead.
	EventsEndpoint      string `env:"EVENTS_ENDPOINT"`
	EventsSendTimeoutMs int    `env:"EVENTS_SEND_TIMEOUT_MS" env-default:"500"`

	SeedRooms []string `env:"SEED_ROOMS" env-separator:","`
}

func New() (*Config, error) {
	return Load(DefaultPath)
}

// Load reads the optional .env file at path into the process environment and
// then fills Config from the environment.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	if c.AdminID == "" || c.AdminPassword == "" {
		return errors.New("admin credentials must not be empty")
	}

	return nil
}

// Usage prints the supported environment variables.
func Usage() {
	cfg := Config{}
	text, _ := cleanenv.GetDescription(&cfg, nil)
	fmt.Fprintln(os.Stderr, text)
}
