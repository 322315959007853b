package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"10m"`
}

type Game struct {
	DefaultMode         string        `yaml:"default-mode" env:"GAME_DEFAULT_MODE" env-default:"normal"`
	RoundDuration       time.Duration `yaml:"round-duration" env:"GAME_ROUND_DURATION" env-default:"60s"`
	WinRestartDelay     time.Duration `yaml:"win-restart-delay" env:"GAME_WIN_RESTART_DELAY" env-default:"3s"`
	TimeoutRestartDelay time.Duration `yaml:"timeout-restart-delay" env:"GAME_TIMEOUT_RESTART_DELAY" env-default:"2s"`
}

// MustLoad - load all configurations in config.yml file, env variables take precedence.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// LoadEnv - builds the configuration from env variables and defaults only.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read env config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
