package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hazadus/go-roulette/internal/catalog"
)

// Extractor используется сборщиком каталога
var _ catalog.SongNamer = (*Extractor)(nil)

func TestExtractFromFileWithoutTags(t *testing.T) {
	tempDir := t.TempDir()
	testFilePath := filepath.Join(tempDir, "Artist - Title.mp3")

	err := os.WriteFile(testFilePath, []byte("fake content"), 0644)
	if err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	metadata := NewExtractor().ExtractFromFile(testFilePath)

	if metadata.Artist != "Artist" {
		t.Errorf("Ожидался Artist: Artist, получено: %s", metadata.Artist)
	}
	if metadata.Title != "Title" {
		t.Errorf("Ожидался Title: Title, получено: %s", metadata.Title)
	}
}

func TestExtractFromCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	testFilePath := filepath.Join(tempDir, "Unknown - Track.mp3")

	corruptedContent := []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD}
	err := os.WriteFile(testFilePath, corruptedContent, 0644)
	if err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	metadata := NewExtractor().ExtractFromFile(testFilePath)

	if metadata.Name() != "Unknown - Track" {
		t.Errorf("Ожидалось имя: Unknown - Track, получено: %s", metadata.Name())
	}
}

func TestExtractFromReader(t *testing.T) {
	tempDir := t.TempDir()
	testFilePath := filepath.Join(tempDir, "Test - Song.mp3")

	err := os.WriteFile(testFilePath, []byte("test content"), 0644)
	if err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	file, err := os.Open(testFilePath)
	if err != nil {
		t.Fatalf("Ошибка открытия файла: %v", err)
	}
	defer file.Close()

	metadata := NewExtractor().ExtractFromReader(file, testFilePath)

	if metadata.Artist != "Test" {
		t.Errorf("Ожидался Artist: Test, получено: %s", metadata.Artist)
	}
	if metadata.Title != "Song" {
		t.Errorf("Ожидался Title: Song, получено: %s", metadata.Title)
	}
}

func TestSongName(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		path     string
		expected string
	}{
		{"/path/to/Artist - Title.mp3", "Artist - Title"},
		{"/path/to/SimpleSong.mp3", "SimpleSong"},
		{"/path/to/Artist - Album - Title.flac", "Artist - Album - Title"},
		{"/path/to/ Spaced .ogg", "Spaced"},
	}

	for _, test := range tests {
		if got := extractor.SongName(test.path); got != test.expected {
			t.Errorf("SongName(%q) = %q; ожидалось %q", test.path, got, test.expected)
		}
	}
}

func TestMetadataName(t *testing.T) {
	tests := []struct {
		metadata SongMetadata
		expected string
	}{
		{SongMetadata{Artist: "A", Title: "B"}, "A - B"},
		{SongMetadata{Title: "B"}, "B"},
		{SongMetadata{Artist: "A"}, ""},
		{SongMetadata{Artist: " A ", Title: " B "}, "A - B"},
	}

	for _, test := range tests {
		if got := test.metadata.Name(); got != test.expected {
			t.Errorf("%+v.Name() = %q; ожидалось %q", test.metadata, got, test.expected)
		}
	}
}

func TestBuildCatalogWithExtractor(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"1 Easy", "2 Hard"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	files := []string{"1 Easy/Band - First.mp3", "1 Easy/cover.jpg", "2 Hard/Second.flac"}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c, err := catalog.BuildFromDir(root, NewExtractor())
	if err != nil {
		t.Fatalf("Ошибка сборки каталога: %v", err)
	}
	if c.StageCount() != 2 {
		t.Fatalf("Ожидалось 2 стадии, получено %d", c.StageCount())
	}
	if !c.Contains("Band - First") || !c.Contains("Second") {
		t.Errorf("Неверный состав каталога: %+v", c.Stages)
	}
	if c.SongCount() != 2 {
		t.Errorf("Обложка не должна попасть в каталог: %+v", c.Stages)
	}
}
