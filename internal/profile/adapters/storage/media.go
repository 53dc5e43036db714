// Package storage сохраняет загруженные изображения и кешированные PDF резюме
// в локальной файловой системе или в S3-совместимом хранилище.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"devprofile/internal/profile/ports/services"
)

// extensions - поддерживаемые типы изображений.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ExtensionFor возвращает расширение файла для типа содержимого.
func ExtensionFor(contentType string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := extensions[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: %q", services.ErrUnsupportedContentType, contentType)
	}
	return ext, nil
}

// AvatarPath возвращает относительный путь нового аватара. Путь не очищается, чтобы IsSafePath
// отверг идентификаторы вида "..".
func AvatarPath(userID, ext string) string {
	return services.AvatarDir(userID) + uuid.NewString() + ext
}

// ProjectImagePath возвращает относительный путь нового изображения проекта.
func ProjectImagePath(userID, projectID, ext string) string {
	return services.ProjectImageDir(userID, projectID) + uuid.NewString() + ext
}

// IsSafePath сообщает, что путь относительный и не выходит за пределы хранилища.
func IsSafePath(rel string) bool {
	if rel == "" || strings.HasPrefix(rel, "/") || strings.Contains(rel, "\\") {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// readLimited читает содержимое целиком. Превышение maxSize дает ErrMediaTooLarge.
func readLimited(content io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(content)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(content, maxSize+1))
	if err != nil {
		return nil, err
	}
	if n > maxSize {
		return nil, services.ErrMediaTooLarge
	}
	return buf.Bytes(), nil
}
