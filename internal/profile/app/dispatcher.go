package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// Ошибки диспетчера.
var (
	ErrHandlerNotRegistered = errors.New("handler not registered")
	ErrHandlerResultType    = errors.New("handler returned unexpected result type")
)

type handlerFunc func(ctx context.Context, cmd any) (any, error)

// Dispatcher - явная таблица "тип команды -> обработчик", заполняемая при старте.
type Dispatcher struct {
	handlers map[reflect.Type]handlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[reflect.Type]handlerFunc)}
}

// Register связывает тип команды C с обработчиком. Повторная регистрация - ошибка программиста.
func Register[C any, R any](d *Dispatcher, handler func(context.Context, C) (Result[R], error)) {
	key := reflect.TypeFor[C]()
	if _, exists := d.handlers[key]; exists {
		panic(fmt.Sprintf("handler for %s already registered", key))
	}
	d.handlers[key] = func(ctx context.Context, cmd any) (any, error) {
		return handler(ctx, cmd.(C))
	}
}

// Dispatch находит обработчик по типу команды и вызывает его.
func Dispatch[C any, R any](ctx context.Context, d *Dispatcher, cmd C) (Result[R], error) {
	key := reflect.TypeFor[C]()
	handler, ok := d.handlers[key]
	if !ok {
		return Result[R]{}, fmt.Errorf("%w: %s", ErrHandlerNotRegistered, key)
	}

	out, err := handler(ctx, cmd)
	if err != nil {
		return Result[R]{}, err
	}

	result, ok := out.(Result[R])
	if !ok {
		return Result[R]{}, fmt.Errorf("%w: %s", ErrHandlerResultType, key)
	}
	return result, nil
}
