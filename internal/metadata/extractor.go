// Package metadata извлекает из аудиофайлов названия песен для каталога
package metadata

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// SongMetadata хранит теги песни
type SongMetadata struct {
	Artist string
	Title  string
}

// Name возвращает имя песни для каталога: "Artist - Title" или только Title
func (m SongMetadata) Name() string {
	artist := strings.TrimSpace(m.Artist)
	title := strings.TrimSpace(m.Title)
	switch {
	case artist == "":
		return title
	case title == "":
		return ""
	default:
		return artist + " - " + title
	}
}

// Extractor извлекает метаданные из аудиофайлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFromReader извлекает метаданные из io.ReadSeeker.
// Если тегов нет, метаданные берутся из имени source.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, source string) SongMetadata {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return e.getDefaultMetadata(source)
	}

	metadata, err := tag.ReadFrom(reader)
	if err != nil || strings.TrimSpace(metadata.Title()) == "" {
		return e.getDefaultMetadata(source)
	}

	return SongMetadata{
		Artist: metadata.Artist(),
		Title:  metadata.Title(),
	}
}

// ExtractFromFile извлекает метаданные из файла
func (e *Extractor) ExtractFromFile(filePath string) SongMetadata {
	file, err := os.Open(filePath)
	if err != nil {
		return e.getDefaultMetadata(filePath)
	}
	defer file.Close()

	return e.ExtractFromReader(file, filePath)
}

// SongName возвращает имя песни для файла
func (e *Extractor) SongName(filePath string) string {
	return e.ExtractFromFile(filePath).Name()
}

// getDefaultMetadata разбирает имя файла в формате "Artist - Title"
func (e *Extractor) getDefaultMetadata(source string) SongMetadata {
	fileName := filepath.Base(source)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return SongMetadata{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return SongMetadata{Title: strings.TrimSpace(nameWithoutExt)}
}
