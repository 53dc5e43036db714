package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

// S3Config - настройки S3-совместимого хранилища.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// S3API - часть клиента S3, которая нужна хранилищам.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client создает клиента. Endpoint задает S3-совместимый сервис вроде MinIO.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// S3MediaStorage хранит изображения объектами S3. Относительный путь совпадает с ключом объекта.
type S3MediaStorage struct {
	client  S3API
	bucket  string
	maxSize int64
}

var _ services.MediaStorage = (*S3MediaStorage)(nil)

// NewS3MediaStorage создает хранилище изображений в бакете.
func NewS3MediaStorage(client S3API, bucket string, maxSize int64) *S3MediaStorage {
	return &S3MediaStorage{client: client, bucket: bucket, maxSize: maxSize}
}

func (s *S3MediaStorage) SaveAvatar(ctx context.Context, userID string, content io.Reader, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	return s.save(ctx, AvatarPath(userID, ext), content, contentType)
}

func (s *S3MediaStorage) SaveProjectImage(ctx context.Context, userID, projectID string, content io.Reader, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	return s.save(ctx, ProjectImagePath(userID, projectID, ext), content, contentType)
}

func (s *S3MediaStorage) Delete(ctx context.Context, relativePath string) error {
	if !IsSafePath(relativePath) {
		return fmt.Errorf("%s: unsafe path %q", errCtxDeleteMedia, relativePath)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(relativePath),
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxDeleteMedia, zap.String("key", relativePath), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteMedia, err)
	}
	return nil
}

func (s *S3MediaStorage) save(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	if !IsSafePath(key) {
		return "", fmt.Errorf("%s: unsafe path %q", errCtxWriteMedia, key)
	}
	data, err := readLimited(content, s.maxSize)
	if err != nil {
		if errors.Is(err, services.ErrMediaTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", errCtxWriteMedia, err)
	}
	if err := putObject(ctx, s.client, s.bucket, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// S3ObjectStorage - байтовое хранилище под префиксом бакета.
type S3ObjectStorage struct {
	client S3API
	bucket string
	prefix string
}

var _ services.ObjectStorage = (*S3ObjectStorage)(nil)

// NewS3ObjectStorage создает хранилище объектов. Пустой prefix означает корень бакета.
func NewS3ObjectStorage(client S3API, bucket, prefix string) *S3ObjectStorage {
	return &S3ObjectStorage{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3ObjectStorage) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// Get читает объект. Отсутствующий ключ дает services.ErrObjectNotFound.
func (s *S3ObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, services.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (s *S3ObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return putObject(ctx, s.client, s.bucket, s.key(key), data, contentType)
}

func putObject(ctx context.Context, client S3API, bucket, key string, data []byte, contentType string) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to put object", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}
