// Package catalog содержит модель каталога песен и функции его загрузки
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrCatalogLoad возвращается (через errors.Is) при любой ошибке загрузки или разбора каталога
var ErrCatalogLoad = errors.New("ошибка загрузки каталога")

// Song описывает одну песню. Имя является идентификатором песни.
type Song struct {
	Name string `json:"name" yaml:"name"`
	VIP  bool   `json:"vip,omitempty" yaml:"vip,omitempty"`
}

// Stage группа песен одного уровня сложности
type Stage struct {
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Layout определяет форму документа каталога
type Layout int

const (
	// StagedLayout - документ вида {"diffs": [{"name", "songs"}]}
	StagedLayout Layout = iota
	// FlatLayout - документ вида {"songs": [...]}
	FlatLayout
)

func (l Layout) String() string {
	switch l {
	case StagedLayout:
		return "staged"
	case FlatLayout:
		return "flat"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Catalog неизменяемый после загрузки список песен, сгруппированный по стадиям.
// Плоский каталог хранится как одна безымянная стадия.
type Catalog struct {
	Layout Layout
	Stages []Stage
}

// StageCount возвращает количество стадий
func (c *Catalog) StageCount() int {
	return len(c.Stages)
}

// ClampStage приводит индекс стадии к диапазону [0, StageCount-1]
func (c *Catalog) ClampStage(i int) int {
	if i >= len(c.Stages) {
		i = len(c.Stages) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// StageName возвращает название стадии (индекс приводится к допустимому диапазону)
func (c *Catalog) StageName(i int) string {
	if len(c.Stages) == 0 {
		return ""
	}
	return c.Stages[c.ClampStage(i)].Name
}

// Contains сообщает, есть ли в каталоге песня с указанным именем
func (c *Catalog) Contains(name string) bool {
	_, ok := c.Song(name)
	return ok
}

// Song ищет песню по имени
func (c *Catalog) Song(name string) (Song, bool) {
	for _, stage := range c.Stages {
		for _, song := range stage.Songs {
			if song.Name == name {
				return song, true
			}
		}
	}
	return Song{}, false
}

// SongCount возвращает общее количество записей во всех стадиях
func (c *Catalog) SongCount() int {
	n := 0
	for _, stage := range c.Stages {
		n += len(stage.Songs)
	}
	return n
}

type rawStage struct {
	Name  string  `json:"name"`
	Songs *[]Song `json:"songs"`
}

type document struct {
	Diffs *[]rawStage `json:"diffs,omitempty"`
	Songs *[]Song     `json:"songs,omitempty"`
}

// Parse разбирает JSON-документ каталога любой из двух форм
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "некорректный JSON каталога")
	}

	switch {
	case doc.Diffs != nil:
		return parseStaged(*doc.Diffs)
	case doc.Songs != nil:
		if err := validateSongs(*doc.Songs, "songs"); err != nil {
			return nil, err
		}
		return &Catalog{
			Layout: FlatLayout,
			Stages: []Stage{{Songs: *doc.Songs}},
		}, nil
	default:
		return nil, errors.New("в каталоге нет ни поля \"diffs\", ни поля \"songs\"")
	}
}

func parseStaged(raw []rawStage) (*Catalog, error) {
	if len(raw) == 0 {
		return nil, errors.New("в каталоге нет ни одной стадии")
	}

	stages := make([]Stage, 0, len(raw))
	for i, rs := range raw {
		if rs.Songs == nil {
			return nil, errors.Errorf("у стадии #%d (%q) нет поля \"songs\"", i, rs.Name)
		}
		if err := validateSongs(*rs.Songs, fmt.Sprintf("diffs[%d].songs", i)); err != nil {
			return nil, err
		}
		stages = append(stages, Stage{Name: rs.Name, Songs: *rs.Songs})
	}

	return &Catalog{Layout: StagedLayout, Stages: stages}, nil
}

func validateSongs(songs []Song, path string) error {
	for i, song := range songs {
		if song.Name == "" {
			return errors.Errorf("у песни %s[%d] пустое имя", path, i)
		}
	}
	return nil
}

// Encode записывает каталог в JSON той же формы, из которой он был прочитан
func Encode(w io.Writer, c *Catalog) error {
	var doc interface{}
	switch c.Layout {
	case FlatLayout:
		songs := make([]Song, 0)
		for _, stage := range c.Stages {
			songs = append(songs, stage.Songs...)
		}
		doc = struct {
			Songs []Song `json:"songs"`
		}{songs}
	default:
		doc = struct {
			Diffs []Stage `json:"diffs"`
		}{c.Stages}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "ошибка сериализации каталога")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
