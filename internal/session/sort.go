package session

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/hazadus/go-roulette/internal/catalog"
)

// ErrKeyNotFound возвращается для неизвестного режима сортировки
var ErrKeyNotFound = errors.New("неизвестный режим сортировки")

// SortMode ключ режима сортировки списка песен
type SortMode string

// Режимы сортировки
const (
	SortByName                SortMode = "name"
	SortByAvailability        SortMode = "availability"
	SortByAvailabilityAndName SortMode = "availabilityAndName"
)

// SortStrategy именованное сравнение песен. Compare получает текущий blacklist,
// потому что доступность меняется вместе с ним.
type SortStrategy struct {
	Label   string
	Compare func(a, b catalog.Song, blacklist Blacklist) int
}

var sortModes = map[SortMode]SortStrategy{
	SortByName: {
		Label: "Имя",
		Compare: func(a, b catalog.Song, _ Blacklist) int {
			return strings.Compare(a.Name, b.Name)
		},
	},
	SortByAvailability: {
		Label: "Доступность",
		Compare: func(a, b catalog.Song, blacklist Blacklist) int {
			return compareBool(blacklist.Excluded(a.Name), blacklist.Excluded(b.Name))
		},
	},
	SortByAvailabilityAndName: {
		Label: "Доступность и имя",
		Compare: func(a, b catalog.Song, blacklist Blacklist) int {
			if c := compareBool(blacklist.Excluded(a.Name), blacklist.Excluded(b.Name)); c != 0 {
				return c
			}
			return strings.Compare(a.Name, b.Name)
		},
	},
}

// sortOrder порядок переключения режимов
var sortOrder = []SortMode{SortByAvailability, SortByAvailabilityAndName, SortByName}

// false < true
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// LookupSort возвращает стратегию по ключу
func LookupSort(mode SortMode) (SortStrategy, error) {
	strategy, ok := sortModes[mode]
	if !ok {
		return SortStrategy{}, errors.Wrapf(ErrKeyNotFound, "%q", string(mode))
	}
	return strategy, nil
}

// SortModes возвращает все режимы в порядке переключения
func SortModes() []SortMode {
	return slices.Clone(sortOrder)
}

// NextSortMode возвращает режим, следующий за mode
func NextSortMode(mode SortMode) SortMode {
	i := slices.Index(sortOrder, mode)
	return sortOrder[(i+1)%len(sortOrder)]
}

// SortSongs стабильно сортирует songs на месте
func SortSongs(songs []catalog.Song, mode SortMode, blacklist Blacklist) error {
	strategy, err := LookupSort(mode)
	if err != nil {
		return err
	}
	slices.SortStableFunc(songs, func(a, b catalog.Song) int {
		return strategy.Compare(a, b, blacklist)
	})
	return nil
}
