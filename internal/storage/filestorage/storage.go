package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaHost представляет хранилище бинарных изображений. Возвращает
// стабильный URL и дескриптор (publicId), по которому файл можно удалить.
type MediaHost interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
	BaseURL() string
}

type UploadResult struct {
	URL      string // стабильный адрес для отображения
	PublicID string // дескриптор для удаления
	Size     int64
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// LocalMediaHost реализация на локальной файловой системе
type LocalMediaHost struct {
	baseDir string // базовый каталог хранения (например: "./uploads")
	baseURL string // базовый URL доступа (например: "http://localhost:8080/uploads")
	maxSize int64  // максимальный размер файла в байтах
}

func NewLocalMediaHost(baseDir, baseURL string, maxSize int64) (*LocalMediaHost, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalMediaHost{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

func (s *LocalMediaHost) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported image format: %s", ext)
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", file.Size, s.maxSize)
	}

	// publicId не зависит от исходного имени файла
	publicID := path.Join(folder, uuid.New().String()+ext)
	filePath := filepath.Join(s.baseDir, filepath.FromSlash(publicID))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return nil, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		_ = os.Remove(filePath)
		return nil, ctx.Err()
	}

	return &UploadResult{
		URL:      s.baseURL + "/" + publicID,
		PublicID: publicID,
		Size:     size,
	}, nil
}

// Destroy удаляет файл по его publicId
func (s *LocalMediaHost) Destroy(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(publicID)))
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalMediaHost) BaseURL() string {
	return s.baseURL
}
