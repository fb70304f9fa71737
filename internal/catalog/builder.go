package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// audioExtensions расширения файлов, которые попадают в каталог
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
}

// SongNamer определяет имя песни по пути к аудиофайлу
type SongNamer interface {
	SongName(path string) string
}

// BuildFromDir строит каталог из директории с аудиофайлами.
// Каждая поддиректория становится стадией (в алфавитном порядке).
// Если поддиректорий нет, получается плоский каталог из файлов корня.
func BuildFromDir(root string, namer SongNamer) (*Catalog, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения директории")
	}

	var stageDirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			stageDirs = append(stageDirs, entry.Name())
		}
	}
	sort.Strings(stageDirs)

	if len(stageDirs) == 0 {
		songs, err := collectSongs(root, namer)
		if err != nil {
			return nil, err
		}
		if len(songs) == 0 {
			return nil, errors.Errorf("в %s нет аудиофайлов", root)
		}
		return &Catalog{Layout: FlatLayout, Stages: []Stage{{Songs: songs}}}, nil
	}

	c := &Catalog{Layout: StagedLayout}
	for _, dir := range stageDirs {
		songs, err := collectSongs(filepath.Join(root, dir), namer)
		if err != nil {
			return nil, err
		}
		c.Stages = append(c.Stages, Stage{Name: dir, Songs: songs})
	}
	return c, nil
}

func collectSongs(dir string, namer SongNamer) ([]Song, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения директории %s", dir)
	}

	songs := make([]Song, 0)
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		name := namer.SongName(filepath.Join(dir, entry.Name()))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		songs = append(songs, Song{Name: name})
	}
	return songs, nil
}
