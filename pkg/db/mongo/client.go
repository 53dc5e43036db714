// Package mongo создает подключение к MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to MongoDB"
	LogConnected  = "successfully connected to MongoDB"
	LogClosing    = "closing MongoDB client"
)

// Константы для сообщений об ошибках.
const (
	ErrConnect    = "failed to connect to MongoDB"
	ErrPing       = "failed to ping MongoDB"
	ErrDisconnect = "failed to disconnect from MongoDB"
)

// Client оборачивает mongo.Client вместе с выбранной базой.
type Client struct {
	client   *mongo.Client
	database string
}

// New подключается к MongoDB и проверяет доступность primary.
func New(ctx context.Context, uri, database string, connectTimeout time.Duration) (*Client, error) {
	log := logger.Log(ctx).With(zap.String("component", "mongo"), zap.String("database", database))
	log.Info(ctx, LogConnecting)

	opts := options.Client().ApplyURI(uri)
	if connectTimeout > 0 {
		opts.SetConnectTimeout(connectTimeout)
		opts.SetServerSelectionTimeout(connectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: client, database: database}, nil
}

// Collection возвращает коллекцию выбранной базы.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

// Close отключает клиента.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDisconnect, err)
	}
	return nil
}
