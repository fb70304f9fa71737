// Package session содержит состояние сессии выбора песни и операции над ним
package session

import (
	"github.com/hazadus/go-roulette/internal/catalog"
)

// Blacklist отображение имени песни в признак исключения.
// Записи только добавляются или переключаются, но не удаляются.
type Blacklist map[string]bool

// Excluded сообщает, исключена ли песня
func (b Blacklist) Excluded(name string) bool {
	return b[name]
}

// Toggle переключает признак исключения и возвращает новое значение
func (b Blacklist) Toggle(name string) bool {
	b[name] = !b[name]
	return b[name]
}

// Clone возвращает независимую копию
func (b Blacklist) Clone() Blacklist {
	out := make(Blacklist, len(b))
	for name, excluded := range b {
		out[name] = excluded
	}
	return out
}

// State состояние сессии
type State struct {
	CurrentStage        int           `yaml:"current_stage"`
	VIPEnabled          bool          `yaml:"vip_enabled"`
	SongBlacklist       Blacklist     `yaml:"song_blacklist"`
	SelectedSong        *catalog.Song `yaml:"selected_song"`
	SortSongs           SortMode      `yaml:"sort_songs"`
	OpenSongList        bool          `yaml:"open_song_list"`
	ClearPreviousStages bool          `yaml:"clear_previous_stages"`
}

// DefaultState возвращает каноническое состояние по умолчанию
func DefaultState() *State {
	return &State{
		CurrentStage:        0,
		VIPEnabled:          false,
		SongBlacklist:       make(Blacklist),
		SelectedSong:        nil,
		SortSongs:           SortByAvailability,
		OpenSongList:        false,
		ClearPreviousStages: true,
	}
}

// Clone возвращает глубокую копию состояния
func (s *State) Clone() *State {
	out := *s
	out.SongBlacklist = s.SongBlacklist.Clone()
	if s.SelectedSong != nil {
		song := *s.SelectedSong
		out.SelectedSong = &song
	}
	return &out
}
