// Package shutdown предоставляет корректное завершение приложения по SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

// Hook - функция освобождения ресурса.
type Hook func(context.Context) error

// Константы для сообщений logger.
const (
	LogSignalReceived = "shutdown signal received"
	LogHookFailed     = "shutdown hook failed"
	LogTimeout        = "shutdown timeout exceeded"
)

// ErrTimeout возвращается, если хуки не завершились за отведенное время.
var ErrTimeout = errors.New("shutdown timeout exceeded")

// Wait блокирует выполнение до сигнала SIGINT/SIGTERM или отмены ctx, затем выполняет хуки.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Log(ctx).Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Log(ctx).Info(ctx, LogSignalReceived, zap.String("signal", "context done"))
	}

	_ = Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки в пределах timeout и возвращает объединенные ошибки.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logger.Log(ctx)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogTimeout, zap.Duration("timeout", timeout))
		return ErrTimeout
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
