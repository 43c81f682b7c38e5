package scheduler

import (
	"log/slog"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
)

// Parameters 控制两条可选的业务规则
type Parameters struct {
	EnforceDailyCap bool // 是否校验每日工时上限
	StrictJoin      bool // 为 true 时，引用了不存在班次的分配记录会导致报错而不是被跳过
}

// Scheduler 不在调用之间保存任何状态，每个操作都重新从 Store 读取
type Scheduler struct {
	store      repository.Store
	parameters *Parameters
	locker     Locker
	notifier   Notifier
}

type Option func(*Scheduler)

func WithLocker(locker Locker) Option {
	return func(s *Scheduler) {
		s.locker = locker
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Scheduler) {
		s.notifier = notifier
	}
}

func New(store repository.Store, parameters *Parameters, opts ...Option) *Scheduler {
	if parameters == nil {
		parameters = &Parameters{EnforceDailyCap: true}
	}

	s := &Scheduler{
		store:      store,
		parameters: parameters,
		locker:     &MutexLocker{},
		notifier:   nopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Notifier 在写入成功之后接收通知
type Notifier interface {
	Notify(msg domain.NotificationMessage) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(domain.NotificationMessage) error { return nil }

// 通知失败不影响已经完成的写入，只记录日志
func (s *Scheduler) notify(msg domain.NotificationMessage) {
	if err := s.notifier.Notify(msg); err != nil {
		slog.Warn("无法发送通知", "type", msg.Type, "error", err)
	}
}
