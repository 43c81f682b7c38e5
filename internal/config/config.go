package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Storage struct {
		Driver          string `env:"DRIVER" envDefault:"file"`
		DataDir         string `env:"DATA_DIR" envDefault:"./data"`
		EmployeesFile   string `env:"EMPLOYEES_FILE" envDefault:"employees.json"`
		ShiftsFile      string `env:"SHIFTS_FILE" envDefault:"shifts.json"`
		AssignmentsFile string `env:"ASSIGNMENTS_FILE" envDefault:"assignments.json"`
		ConfigFile      string `env:"CONFIG_FILE" envDefault:"config.json"`
	} `envPrefix:"STORAGE_"`
	Database struct {
		DSN            string `env:"DSN"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Scheduling struct {
		EnforceDailyCap bool `env:"ENFORCE_DAILY_CAP" envDefault:"true"`
		StrictJoin      bool `env:"STRICT_JOIN" envDefault:"false"`
	} `envPrefix:"SCHEDULING_"`
	Redis struct {
		Host            string `env:"HOST"` // 为空表示不使用 redis 锁
		Port            int    `env:"PORT" envDefault:"6379"`
		Password        string `env:"PASSWORD"`
		ConnectTimeout  int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		LockKey         string `env:"LOCK_KEY" envDefault:"shift_roster:write_lock"`
		LockExpiration  int    `env:"LOCK_EXPIRATION" envDefault:"10"`
		LockWaitTimeout int    `env:"LOCK_WAIT_TIMEOUT" envDefault:"5"`
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // 为空表示不发送通知
		Queue          string `env:"QUEUE" envDefault:"roster_events"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		Recipient string `env:"RECIPIENT"`
		SMTP      struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Seed struct {
		MaxDailyHours float64 `env:"MAX_DAILY_HOURS" envDefault:"8"`
		ShiftsCSV     string  `env:"SHIFTS_CSV" envDefault:"./data/shifts.csv"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	// .env 文件是可选的，不存在时直接使用环境变量
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	switch cfg.Storage.Driver {
	case StorageDriverFile:
	case StorageDriverPostgres:
		if cfg.Database.DSN == "" {
			return nil, errors.New("使用 postgres 存储时必须设置 DATABASE_DSN")
		}
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.DSN != ""
}
