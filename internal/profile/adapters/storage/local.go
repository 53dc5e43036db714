package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	errCtxWriteMedia  = "failed to write media file"
	errCtxDeleteMedia = "failed to delete media file"
)

// LocalMediaStorage хранит файлы в каталоге root. Возвращаемые пути относительны root.
type LocalMediaStorage struct {
	root    string
	maxSize int64
}

var _ services.MediaStorage = (*LocalMediaStorage)(nil)

// NewLocalMediaStorage создает файловое хранилище. maxSize <= 0 снимает ограничение размера.
func NewLocalMediaStorage(root string, maxSize int64) *LocalMediaStorage {
	return &LocalMediaStorage{root: root, maxSize: maxSize}
}

// Root возвращает корневой каталог хранилища.
func (s *LocalMediaStorage) Root() string {
	return s.root
}

func (s *LocalMediaStorage) SaveAvatar(ctx context.Context, userID string, content io.Reader, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	return s.save(ctx, AvatarPath(userID, ext), content)
}

func (s *LocalMediaStorage) SaveProjectImage(ctx context.Context, userID, projectID string, content io.Reader, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	return s.save(ctx, ProjectImagePath(userID, projectID, ext), content)
}

// Delete удаляет файл. Отсутствующий файл ошибкой не считается.
func (s *LocalMediaStorage) Delete(ctx context.Context, relativePath string) error {
	if !IsSafePath(relativePath) {
		return fmt.Errorf("%s: unsafe path %q", errCtxDeleteMedia, relativePath)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relativePath)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log(ctx).Error(ctx, errCtxDeleteMedia, zap.String("path", relativePath), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteMedia, err)
	}
	return nil
}

func (s *LocalMediaStorage) save(ctx context.Context, rel string, content io.Reader) (string, error) {
	log := logger.Log(ctx).With(zap.String("storage", "local"), zap.String("path", rel))

	if !IsSafePath(rel) {
		return "", fmt.Errorf("%s: unsafe path %q", errCtxWriteMedia, rel)
	}
	data, err := readLimited(content, s.maxSize)
	if err != nil {
		if errors.Is(err, services.ErrMediaTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", errCtxWriteMedia, err)
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		log.Error(ctx, errCtxWriteMedia, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxWriteMedia, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		log.Error(ctx, errCtxWriteMedia, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxWriteMedia, err)
	}

	log.Debug(ctx, "media file written", zap.Int("bytes", len(data)))
	return rel, nil
}

// LocalObjectStorage - ObjectStorage в каталоге root, для запуска без S3.
type LocalObjectStorage struct {
	root string
}

var _ services.ObjectStorage = (*LocalObjectStorage)(nil)

// NewLocalObjectStorage создает файловое хранилище объектов.
func NewLocalObjectStorage(root string) *LocalObjectStorage {
	return &LocalObjectStorage{root: root}
}

func (s *LocalObjectStorage) Get(_ context.Context, key string) ([]byte, error) {
	if !IsSafePath(key) {
		return nil, fmt.Errorf("unsafe object key %q", key)
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (s *LocalObjectStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	if !IsSafePath(key) {
		return fmt.Errorf("unsafe object key %q", key)
	}
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	return nil
}
