// Package view строит снимок отображения из состояния сессии.
// Снимок не зависит от способа вывода: регионы содержат значения
// подстановок, список песен содержит готовые строки.
package view

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/valyala/fasttemplate"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/session"
	"github.com/hazadus/go-roulette/internal/utils"
)

// Имена регионов
const (
	RegionCurrentStage     = "currentStage"
	RegionSelectedSong     = "selectedSong"
	RegionAvailSongs       = "availSongs"
	RegionOptSongList      = "optSongList"
	RegionOptStageClear    = "optStageClear"
	RegionOptVIP           = "optVIP"
	RegionRandomSongPrompt = "randomSongPrompt"
)

// Имена подстановок
const (
	TokenCurrentStage = "CURRENT_STAGE"
	TokenCurrentSong  = "CURRENT_SONG"
	TokenSongCount    = "SONG_COUNT"
	TokenAction       = "ACTION"
	TokenSelectedSong = "SELECTED_SONG"
)

// Бюджет длины подписи в списке
const (
	StagedLabelWidth = 22
	FlatLabelWidth   = 25
)

// NoSong подпись для отсутствующей песни
const NoSong = "Нет"

// Region значения подстановок одной области экрана
type Region struct {
	Values map[string]string
	Hidden bool
}

// Render подставляет значения региона в шаблон вида "Стадия: %CURRENT_STAGE%".
// Неизвестные подстановки заменяются пустой строкой.
func (r Region) Render(template string) string {
	values := make(map[string]interface{}, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return fasttemplate.ExecuteString(template, "%", "%", values)
}

// RowStatus определяет цвет строки списка
type RowStatus int

const (
	// RowDefault - песня доступна
	RowDefault RowStatus = iota
	// RowSelected - песня выбрана
	RowSelected
	// RowBlacklisted - песня исключена
	RowBlacklisted
)

// Row строка списка песен. Name служит идентификатором строки при нажатии.
type Row struct {
	Name   string
	Label  string
	Toggle string
	Status RowStatus
}

// SongList список песен
type SongList struct {
	Visible   bool
	SortLabel string
	Rows      []Row
}

// Snapshot полный снимок отображения
type Snapshot struct {
	Regions  map[string]Region
	SongList SongList
	Notice   string
}

// Region возвращает регион по имени; отсутствующий регион скрыт
func (s Snapshot) Region(name string) Region {
	r, ok := s.Regions[name]
	if !ok {
		return Region{Hidden: true}
	}
	return r
}

// Options параметры построения снимка
type Options struct {
	// LabelWidth бюджет длины подписи; 0 - по форме каталога
	LabelWidth int
}

// LabelWidthFor возвращает бюджет подписи для формы каталога
func LabelWidthFor(layout catalog.Layout) int {
	if layout == catalog.FlatLayout {
		return FlatLabelWidth
	}
	return StagedLabelWidth
}

// SongLabel подпись песни; для отсутствующей песни "Нет"
func SongLabel(song *catalog.Song) string {
	if song == nil {
		return NoSong
	}
	return song.Name
}

// Build полностью пересчитывает снимок из текущего состояния
func Build(store *session.Store, opts Options) Snapshot {
	c := store.Catalog()
	st := store.State()
	prompt := store.Prompt()
	flat := c.Layout == catalog.FlatLayout

	snapshot := Snapshot{
		Regions: map[string]Region{
			RegionCurrentStage: {
				Values: map[string]string{TokenCurrentStage: c.StageName(st.CurrentStage)},
				Hidden: flat,
			},
			RegionSelectedSong: {
				Values: map[string]string{TokenCurrentSong: SongLabel(st.SelectedSong)},
			},
			RegionAvailSongs: {
				Values: map[string]string{
					TokenSongCount: strconv.Itoa(len(store.AvailableSongs(st.CurrentStage, st.SongBlacklist))),
				},
			},
			RegionOptSongList: {
				Values: map[string]string{TokenAction: toggleAction(st.OpenSongList, "Закрыть", "Открыть")},
			},
			RegionOptStageClear: {
				Values: map[string]string{TokenAction: toggleAction(st.ClearPreviousStages, "Выключить", "Включить")},
				Hidden: flat,
			},
			RegionOptVIP: {
				Values: map[string]string{TokenAction: toggleAction(st.VIPEnabled, "Выключить", "Включить")},
				Hidden: !flat,
			},
			RegionRandomSongPrompt: {
				Values: map[string]string{TokenSelectedSong: SongLabel(prompt.Candidate)},
				Hidden: !prompt.Visible,
			},
		},
	}

	width := opts.LabelWidth
	if width <= 0 {
		width = LabelWidthFor(c.Layout)
	}

	list, err := buildSongList(store, width)
	if err != nil {
		snapshot.Notice = err.Error()
	}
	snapshot.SongList = list

	if notice := store.Notice(); notice != nil {
		snapshot.Notice = noticeText(notice)
	}
	return snapshot
}

func toggleAction(on bool, whenOn, whenOff string) string {
	if on {
		return whenOn
	}
	return whenOff
}

// buildSongList строит список со всеми песнями стадии: blacklist не применяется,
// чтобы исключенные песни можно было вернуть.
func buildSongList(store *session.Store, width int) (SongList, error) {
	st := store.State()
	if !st.OpenSongList {
		return SongList{}, nil
	}

	strategy, err := session.LookupSort(st.SortSongs)
	if err != nil {
		return SongList{Visible: true}, err
	}

	songs := store.AvailableSongs(st.CurrentStage, session.Blacklist{})
	if err := session.SortSongs(songs, st.SortSongs, st.SongBlacklist); err != nil {
		return SongList{Visible: true}, err
	}

	rows := make([]Row, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, Row{
			Name:   song.Name,
			Label:  utils.TruncateLabel(song.Name, width),
			Toggle: toggleCaption(st.SongBlacklist.Excluded(song.Name)),
			Status: rowStatus(st, song.Name),
		})
	}

	return SongList{Visible: true, SortLabel: strategy.Label, Rows: rows}, nil
}

func toggleCaption(excluded bool) string {
	if excluded {
		return "W"
	}
	return "B"
}

func rowStatus(st *session.State, name string) RowStatus {
	switch {
	case st.SelectedSong != nil && st.SelectedSong.Name == name:
		return RowSelected
	case st.SongBlacklist.Excluded(name):
		return RowBlacklisted
	default:
		return RowDefault
	}
}

func noticeText(err error) string {
	switch {
	case errors.Is(err, session.ErrNoAvailableSongs):
		return "Нет доступных песен: все песни стадии исключены"
	case errors.Is(err, session.ErrNoPendingCandidate):
		return "Сначала выберите случайную песню"
	default:
		return err.Error()
	}
}
