package main

import (
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/bootstrap"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/menu"
)

func main() {
	// 菜单占用标准输出，日志写到标准错误
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := bootstrap.OpenStore(cfg)
	if err != nil {
		logger.Error("无法打开存储", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	s, closeScheduler, err := bootstrap.NewScheduler(cfg, store)
	if err != nil {
		logger.Error("无法创建调度器", "error", err)
		os.Exit(1)
	}
	defer closeScheduler()

	if err := menu.New(s, os.Stdin, os.Stdout).Run(); err != nil {
		logger.Error("菜单异常退出", "error", err)
	}
}
