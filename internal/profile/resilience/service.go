package resilience

import (
	"context"

	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

// ServiceResilience объединяет предохранитель и повторы для одного внешнего сервиса.
// Повторы выполняются внутри предохранителя, поэтому серия неудачных попыток считается одной ошибкой.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку с заданными настройками.
func NewServiceResilience(serviceName string, cbConfig CircuitBreakerConfig, retryConfig RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cbConfig),
		retry:          NewRetry(serviceName, retryConfig),
	}
}

// NewDefaultServiceResilience создает обертку с настройками по умолчанию.
func NewDefaultServiceResilience(serviceName string) *ServiceResilience {
	return NewServiceResilience(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

// Execute выполняет операцию с предохранителем и повторами.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	)
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// State возвращает состояние предохранителя.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.State()
}

// Do выполняет операцию с результатом через ServiceResilience.
func Do[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
