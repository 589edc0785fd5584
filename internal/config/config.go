package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Server      ServerConfig      `mapstructure:"server"`
	Governance  GovernanceConfig  `mapstructure:"governance"`
	Audit       AuditConfig       `mapstructure:"audit"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type DatabaseConfig struct {
	Dialect         string `mapstructure:"dialect"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	Path            string `mapstructure:"path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// DSN renders the connection string for the configured dialect.
func (d *DatabaseConfig) DSN() string {
	switch d.Dialect {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.User, d.Password, d.DBName)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	}
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type GovernanceConfig struct {
	Admin   string `mapstructure:"admin"`
	TokenID string `mapstructure:"token_id"`
	// LockUnitSeconds scales a deposit's lock duration into seconds.
	LockUnitSeconds int64  `mapstructure:"lock_unit_seconds"`
	ScorePerVote    uint64 `mapstructure:"score_per_vote"`
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

type LeaderboardConfig struct {
	Backend       string `mapstructure:"backend"`
	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.dialect", "mysql")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("governance.token_id", "PLSR")
	v.SetDefault("governance.lock_unit_seconds", 1)
	v.SetDefault("governance.score_per_vote", 10)
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.cron", "0 */10 * * * *")
	v.SetDefault("leaderboard.backend", "db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PULSAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Dialect {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database dialect: %s", c.Database.Dialect)
	}
	switch c.Leaderboard.Backend {
	case "db", "redis":
	default:
		return fmt.Errorf("unsupported leaderboard backend: %s", c.Leaderboard.Backend)
	}
	if c.Governance.LockUnitSeconds <= 0 {
		return fmt.Errorf("governance.lock_unit_seconds must be positive")
	}
	return nil
}
