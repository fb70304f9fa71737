package session

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hazadus/go-roulette/internal/catalog"
)

// ErrNoAvailableSongs возвращается, когда выбирать не из чего
var ErrNoAvailableSongs = errors.New("нет доступных песен")

// Randomizer равновероятно выбирает песню из списка
type Randomizer struct {
	rng *rand.Rand
}

// NewRandomizer создает Randomizer. При src == nil используется источник
// со случайным зерном.
func NewRandomizer(src rand.Source) *Randomizer {
	if src == nil {
		src = rand.NewSource(trueRandSeed())
	}
	return &Randomizer{rng: rand.New(src)}
}

func trueRandSeed() (seed int64) {
	err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed)
	if err == nil {
		return
	}
	return time.Now().UnixNano()
}

// Pick возвращает случайный элемент songs
func (r *Randomizer) Pick(songs []catalog.Song) (catalog.Song, error) {
	if len(songs) == 0 {
		return catalog.Song{}, ErrNoAvailableSongs
	}
	return songs[r.rng.Intn(len(songs))], nil
}
