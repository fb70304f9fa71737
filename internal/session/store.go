package session

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/hazadus/go-roulette/internal/catalog"
)

var (
	// ErrNoPendingCandidate возвращается при подтверждении без выбранного кандидата
	ErrNoPendingCandidate = errors.New("нет песни, ожидающей подтверждения")
	// ErrUnknownSong возвращается для имени, которого нет в каталоге
	ErrUnknownSong = errors.New("песни нет в каталоге")
)

// Prompt состояние окна подтверждения случайной песни
type Prompt struct {
	Visible   bool
	Candidate *catalog.Song
}

// Store владеет каталогом и единственным экземпляром состояния сессии.
// Каждая мутация завершается одним уведомлением подписчиков.
type Store struct {
	catalog    *catalog.Catalog
	state      *State
	prompt     Prompt
	notice     error
	randomizer *Randomizer
	sortMode   SortMode

	listeners []func(*Store)
	notifying bool
	dirty     bool
}

// Option настраивает Store
type Option func(*Store)

// WithRandSource задает источник случайных чисел (для воспроизводимых тестов)
func WithRandSource(src rand.Source) Option {
	return func(s *Store) {
		s.randomizer = NewRandomizer(src)
	}
}

// WithSortMode задает режим сортировки состояния по умолчанию.
// Неизвестный режим игнорируется.
func WithSortMode(mode SortMode) Option {
	return func(s *Store) {
		if _, err := LookupSort(mode); err == nil {
			s.sortMode = mode
		}
	}
}

// NewStore создает Store над загруженным каталогом
func NewStore(c *catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog:  c,
		sortMode: SortByAvailability,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.randomizer == nil {
		s.randomizer = NewRandomizer(nil)
	}
	s.state = s.defaultState()
	return s
}

func (s *Store) defaultState() *State {
	st := DefaultState()
	st.SortSongs = s.sortMode
	return st
}

// Catalog возвращает каталог
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// State возвращает текущее состояние. Изменять его нужно только через методы Store.
func (s *Store) State() *State {
	return s.state
}

// Prompt возвращает состояние окна подтверждения
func (s *Store) Prompt() Prompt {
	return s.prompt
}

// Notice возвращает ошибку последней неудачной операции, если она была
func (s *Store) Notice() error {
	return s.notice
}

// OnChange добавляет подписчика на изменения состояния
func (s *Store) OnChange(fn func(*Store)) {
	s.listeners = append(s.listeners, fn)
}

// Changed оповещает подписчиков без изменения состояния
func (s *Store) Changed() {
	s.stateChanged()
}

// stateChanged оповещает подписчиков. Вызов изнутри подписчика не вкладывается,
// а запрашивает еще один полный проход после текущего.
func (s *Store) stateChanged() {
	if s.notifying {
		s.dirty = true
		return
	}

	s.notifying = true
	defer func() { s.notifying = false }()

	for {
		s.dirty = false
		for _, fn := range s.listeners {
			fn(s)
		}
		if !s.dirty {
			return
		}
	}
}

func (s *Store) fail(err error) error {
	s.notice = err
	s.stateChanged()
	return err
}

func (s *Store) succeed() {
	s.notice = nil
	s.stateChanged()
}

// Reset строит состояние по умолчанию. При apply оно заменяет текущее.
// Возвращается построенное состояние в любом случае.
func (s *Store) Reset(apply bool) *State {
	st := s.defaultState()
	if apply {
		s.state = st
		s.prompt = Prompt{}
		s.succeed()
	}
	return st
}

// AvailableSongs возвращает песни, доступные на стадии stage с учетом blacklist
func (s *Store) AvailableSongs(stage int, blacklist Blacklist) []catalog.Song {
	return AvailableSongs(s.catalog, s.state, stage, blacklist)
}

// PickRandomSong выбирает случайную доступную песню
func (s *Store) PickRandomSong(stage int, blacklist Blacklist) (catalog.Song, error) {
	return s.randomizer.Pick(s.AvailableSongs(stage, blacklist))
}

// AdvanceStage переходит к следующей стадии, после последней возвращается к первой
func (s *Store) AdvanceStage() {
	if s.state.CurrentStage < s.catalog.StageCount()-1 {
		s.state.CurrentStage++
	} else {
		s.state.CurrentStage = 0
	}
	s.succeed()
}

// SetStage устанавливает стадию, приводя индекс к допустимому диапазону
func (s *Store) SetStage(i int) {
	s.state.CurrentStage = s.catalog.ClampStage(i)
	s.succeed()
}

// ToggleSongList переключает видимость списка песен
func (s *Store) ToggleSongList() {
	s.state.OpenSongList = !s.state.OpenSongList
	s.succeed()
}

// ToggleClearPreviousStages переключает учет песен предыдущих стадий
func (s *Store) ToggleClearPreviousStages() {
	s.state.ClearPreviousStages = !s.state.ClearPreviousStages
	s.succeed()
}

// ToggleVIP переключает доступность VIP-песен
func (s *Store) ToggleVIP() {
	s.state.VIPEnabled = !s.state.VIPEnabled
	s.succeed()
}

// ToggleBlacklist переключает исключение песни
func (s *Store) ToggleBlacklist(name string) error {
	if !s.catalog.Contains(name) {
		return s.fail(errors.Wrapf(ErrUnknownSong, "%q", name))
	}
	s.state.SongBlacklist.Toggle(name)
	s.succeed()
	return nil
}

// SetSortMode устанавливает режим сортировки списка
func (s *Store) SetSortMode(mode SortMode) error {
	if _, err := LookupSort(mode); err != nil {
		return s.fail(err)
	}
	s.state.SortSongs = mode
	s.succeed()
	return nil
}

// CycleSortMode переключает режим сортировки на следующий
func (s *Store) CycleSortMode() {
	s.state.SortSongs = NextSortMode(s.state.SortSongs)
	s.succeed()
}

// GetRandomSongPressed показывает окно подтверждения и выбирает кандидата
// на текущей стадии с текущим blacklist. Если выбирать не из чего, окно
// показывается без кандидата, а ошибка становится уведомлением.
func (s *Store) GetRandomSongPressed() error {
	s.prompt.Visible = true

	song, err := s.PickRandomSong(s.state.CurrentStage, s.state.SongBlacklist)
	if err != nil {
		s.prompt.Candidate = nil
		return s.fail(err)
	}

	s.prompt.Candidate = &song
	s.succeed()
	return nil
}

// ConfirmRandomSong закрывает окно подтверждения. При accept кандидат
// становится выбранной песней, иначе выбор сбрасывается. При addToBlacklist
// кандидат исключается в любом случае, в том числе при отказе.
func (s *Store) ConfirmRandomSong(accept, addToBlacklist bool) error {
	s.prompt.Visible = false

	candidate := s.prompt.Candidate
	if candidate == nil {
		return s.fail(ErrNoPendingCandidate)
	}
	s.prompt.Candidate = nil

	if accept {
		s.state.SelectedSong = candidate
	} else {
		s.state.SelectedSong = nil
	}
	if addToBlacklist {
		s.state.SongBlacklist[candidate.Name] = true
	}

	s.succeed()
	return nil
}

// Restore заменяет состояние сохраненным снимком, согласуя его с каталогом:
// стадия приводится к диапазону, неизвестные песни отбрасываются.
func (s *Store) Restore(st *State) error {
	if _, err := LookupSort(st.SortSongs); err != nil {
		return s.fail(err)
	}

	restored := st.Clone()
	restored.CurrentStage = s.catalog.ClampStage(restored.CurrentStage)
	for name := range restored.SongBlacklist {
		if !s.catalog.Contains(name) {
			delete(restored.SongBlacklist, name)
		}
	}
	if restored.SelectedSong != nil {
		song, ok := s.catalog.Song(restored.SelectedSong.Name)
		if ok {
			restored.SelectedSong = &song
		} else {
			restored.SelectedSong = nil
		}
	}

	s.state = restored
	s.prompt = Prompt{}
	s.succeed()
	return nil
}
