// Package uploader публикует документы каталога в объектное хранилище
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hazadus/go-roulette/internal/catalog"
)

// FileUploader загружает содержимое под ключом и возвращает адрес объекта
type FileUploader interface {
	UploadFile(ctx context.Context, reader io.Reader, key string) (string, error)
}

// Service управляет публикацией каталога
type Service struct {
	uploader FileUploader
}

// NewService создает новый сервис публикации
func NewService(uploader FileUploader) *Service {
	return &Service{uploader: uploader}
}

// UploadResult содержит результат публикации
type UploadResult struct {
	URL     string
	Size    int64
	Catalog *catalog.Catalog
}

// UploadFile проверяет документ каталога и загружает его. Пустой key
// заменяется именем файла. Некорректный каталог не загружается.
func (s *Service) UploadFile(ctx context.Context, filePath, key string, progressCallback func(int64)) (*UploadResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("файл не найден: %s", filePath)
		}
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}

	c, err := catalog.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "файл %s не является каталогом", filePath)
	}

	// Создаем reader с отслеживанием прогресса
	var reader io.Reader = bytes.NewReader(data)
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     reader,
			Size:       int64(len(data)),
			OnProgress: progressCallback,
		}
	}

	if key == "" {
		key = filepath.Base(filePath)
	}

	url, err := s.uploader.UploadFile(ctx, reader, key)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка загрузки в S3")
	}

	return &UploadResult{
		URL:     url,
		Size:    int64(len(data)),
		Catalog: c,
	}, nil
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// FormatFileSize форматирует размер файла в читаемом виде
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
