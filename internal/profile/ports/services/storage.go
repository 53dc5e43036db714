package services

import (
	"context"
	"errors"
	"io"

	"devprofile/internal/profile/domain/entities"
)

// Ошибки хранилищ.
var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrObjectNotFound         = errors.New("object not found")
	ErrMediaTooLarge          = errors.New("media file is too large")
)

// AvatarDir - каталог аватаров пользователя внутри медиахранилища.
func AvatarDir(userID string) string {
	return "avatars/" + userID + "/"
}

// ProjectImageDir - каталог изображений проекта пользователя.
func ProjectImageDir(userID, projectID string) string {
	return "projects/" + userID + "/" + projectID + "/"
}

// MediaStorage сохраняет загруженные изображения и возвращает относительный путь.
type MediaStorage interface {
	SaveAvatar(ctx context.Context, userID string, content io.Reader, contentType string) (string, error)
	SaveProjectImage(ctx context.Context, userID, projectID string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, relativePath string) error
}

// ObjectStorage - байтовое хранилище для кеша резюме.
type ObjectStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// PDFRenderer превращает HTML в PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ResumeTemplate строит HTML резюме по профилю.
type ResumeTemplate interface {
	Render(profile *entities.DeveloperProfile) ([]byte, error)
}
