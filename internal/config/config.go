package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TEAM_DATABASE_HOST.
const EnvPrefix = "TEAM"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Crypto     CryptoConfig     `mapstructure:"crypto"`
	Auth       AuthConfig       `mapstructure:"auth"`
	TeamServer TeamServerConfig `mapstructure:"teamserver"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
	GinMode       string `mapstructure:"gin_mode"`
	SessionSecret string `mapstructure:"session_secret"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"`
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// CryptoConfig holds the secret all stored passwords and credential hashes are encrypted with.
// Changing it makes every stored value unreadable.
type CryptoConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type AuthConfig struct {
	MaxLoginRetries int `mapstructure:"max_login_retries"`
}

type TeamServerConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_address", ":8080")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.session_secret", "default-secret-key-change-me")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "teamuser")
	v.SetDefault("database.password", "teampassword")
	v.SetDefault("database.name", "team_tracker")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("crypto.secret_key", "default-crypto-key-change-me")

	v.SetDefault("auth.max_login_retries", 5)

	v.SetDefault("teamserver.timeout", 10*time.Second)
	v.SetDefault("teamserver.retry_count", 2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads configuration from defaults, an optional config file, a .env file
// in the working directory and TEAM_* environment variables, in increasing priority.
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
	}

	cfg := &Config{}
	if err := bindEnvs(v, cfg); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return cfg, nil
}

// https://github.com/spf13/viper/issues/188#issuecomment-399884438
func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) error {
	ifv := reflect.ValueOf(iface)
	if ifv.Kind() == reflect.Ptr {
		ifv = ifv.Elem()
	}
	ift := ifv.Type()

	for i := 0; i < ift.NumField(); i++ {
		field := ifv.Field(i)
		t := ift.Field(i)
		name, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			name = t.Name
		}
		if field.Kind() == reflect.Struct {
			if err := bindEnvs(v, field.Interface(), append(parts, name)...); err != nil {
				return err
			}
			continue
		}
		if err := v.BindEnv(strings.Join(append(parts, name), ".")); err != nil {
			return errors.Wrapf(err, "failed to bind env for %s", name)
		}
	}
	return nil
}

// DSN builds the driver specific data source name.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return "host=" + c.Host +
			" user=" + c.User +
			" password=" + c.Password +
			" dbname=" + c.Name +
			" port=" + c.Port +
			" sslmode=disable TimeZone=UTC"
	}
	return c.User + ":" + c.Password + "@tcp(" + c.Host + ":" + c.Port + ")/" + c.Name +
		"?charset=utf8mb4&parseTime=True&loc=Local"
}

// Address returns host:port of the session store.
func (c RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}
