package scheduler

import "sync"

// Locker 用于把“校验然后写入”的整个过程串行化
type Locker interface {
	Lock() (unlock func(), err error)
}

// MutexLocker 只能保证单进程内的串行，多进程部署时应使用 redis 锁
type MutexLocker struct {
	mu sync.Mutex
}

func (l *MutexLocker) Lock() (func(), error) {
	l.mu.Lock()
	return l.mu.Unlock, nil
}
