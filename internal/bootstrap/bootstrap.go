// Package bootstrap 负责把配置转换成可用的存储和调度器，供各个命令共用
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/lock"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/notify"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/scheduler"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Cleanup 按打开的相反顺序释放资源
type Cleanup func()

func chain(cleanups []func()) Cleanup {
	return func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
}

func OpenDatabase(cfg *config.Config) (*sql.DB, error) {
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("无法创建数据库连接池: %w", err)
	}

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("无法连接到数据库: %w", err)
	}

	return dbpool, nil
}

// OpenStore 打开配置的存储后端。postgres 后端会先执行建表语句。
func OpenStore(cfg *config.Config) (repository.Store, Cleanup, error) {
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		store, err := repository.Open(cfg, nil)
		return store, func() {}, err
	}

	dbpool, err := OpenDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewPostgresRepository(cfg, dbpool)
	if err := repo.Migrate(); err != nil {
		dbpool.Close()
		return nil, nil, err
	}

	return repo, func() { dbpool.Close() }, nil
}

// NewScheduler 创建调度器。配置了 redis 时使用分布式锁，配置了 rabbitmq 时发布写入事件。
func NewScheduler(cfg *config.Config, store repository.Store) (*scheduler.Scheduler, Cleanup, error) {
	var (
		opts     []scheduler.Option
		cleanups []func()
	)
	fail := func(err error) (*scheduler.Scheduler, Cleanup, error) {
		chain(cleanups)()
		return nil, nil, err
	}

	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       0,
		})
		cleanups = append(cleanups, func() { rdb.Close() })

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fail(fmt.Errorf("无法连接到 redis: %w", err))
		}

		opts = append(opts, scheduler.WithLocker(lock.NewRedisLocker(cfg, rdb)))
		slog.Info("使用 redis 分布式锁", "key", cfg.Redis.LockKey)
	}

	if cfg.RabbitMQEnabled() {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			return fail(fmt.Errorf("无法连接到 rabbitmq: %w", err))
		}
		cleanups = append(cleanups, func() { conn.Close() })

		// 建立通道
		ch, err := conn.Channel()
		if err != nil {
			return fail(fmt.Errorf("无法建立通道: %w", err))
		}
		cleanups = append(cleanups, func() { ch.Close() })

		// 声明队列
		if _, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			return fail(fmt.Errorf("无法声明队列: %w", err))
		}

		opts = append(opts, scheduler.WithNotifier(notify.NewPublisher(cfg, ch)))
		slog.Info("写入事件将发布到 rabbitmq", "queue", cfg.RabbitMQ.Queue)
	}

	s := scheduler.New(store, &scheduler.Parameters{
		EnforceDailyCap: cfg.Scheduling.EnforceDailyCap,
		StrictJoin:      cfg.Scheduling.StrictJoin,
	}, opts...)

	return s, chain(cleanups), nil
}
