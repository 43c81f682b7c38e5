package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/bootstrap"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/seed"
)

func main() {
	var op int
	var n int
	var days int
	var csvPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入随机班次, 3: 从 CSV 导入班次, 4: 初始化存储)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.IntVar(&days, "days", 7, "随机班次的日期范围（从今天开始的天数）")
	flag.StringVar(&csvPath, "csv", "", "班次 CSV 文件路径，默认使用 SEED_SHIFTS_CSV")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, closeStore, err := bootstrap.OpenStore(cfg)
	if err != nil {
		logger.Error("无法打开存储", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	shiftStore, ok := store.(seed.ShiftStore)
	if !ok {
		logger.Error("存储后端不支持写入班次", slog.String("driver", cfg.Storage.Driver))
		return
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		s, closeScheduler, err := bootstrap.NewScheduler(cfg, store)
		if err != nil {
			slog.Error("无法创建调度器", slog.String("error", err.Error()))
			return
		}
		defer closeScheduler()

		cnt := seed.SeedRandomEmployees(s, n)
		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 2:
		if n <= 0 || days <= 0 {
			slog.Error("请输入合法的班次数量和天数")
			return
		}

		cnt, err := seed.SeedRandomShifts(shiftStore, n, time.Now(), days)
		report(logger, "插入班次", cnt, err)
	case 3:
		if csvPath == "" {
			csvPath = cfg.Seed.ShiftsCSV
		}

		file, err := os.Open(csvPath)
		if err != nil {
			slog.Error("无法打开 CSV 文件", slog.String("path", csvPath), slog.String("error", err.Error()))
			return
		}
		defer file.Close()

		cnt, err := seed.ImportShifts(shiftStore, file)
		report(logger, "导入班次", cnt, err)
	case 4:
		maxDailyHours := cfg.Seed.MaxDailyHours
		settings := &domain.Settings{MaxDailyHours: &maxDailyHours}

		switch repo := store.(type) {
		case *repository.FileRepository:
			err = repo.EnsureContainers(settings)
		case *repository.PostgresRepository:
			err = repo.EnsureSettings(settings)
		}
		if err != nil {
			slog.Error("初始化存储失败", slog.String("error", err.Error()))
			return
		}
		slog.Info("初始化存储成功", slog.String("driver", cfg.Storage.Driver), slog.Float64("maxDailyHours", maxDailyHours))
	default:
		slog.Error("指定的操作非法")
	}
}

// report 出错时只报告已经写入的部分数量，不再报告成功
func report(logger *slog.Logger, action string, cnt int, err error) {
	if err != nil {
		logger.Error(action+"失败", slog.Int("written", cnt), slog.String("error", err.Error()))
		return
	}
	logger.Info(action+"成功", slog.Int("count", cnt))
}
