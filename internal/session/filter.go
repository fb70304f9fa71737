package session

import (
	"github.com/hazadus/go-roulette/internal/catalog"
)

// AvailableSongs возвращает песни, доступные на стадии stage с учетом blacklist.
//
// Индекс стадии приводится к допустимому диапазону. При включенном
// ClearPreviousStages учитывается только целевая стадия, иначе песни всех
// стадий с 0 по stage включительно (повторы сохраняются). Порядок совпадает
// с порядком в каталоге. В плоском каталоге VIP-песни доступны только при
// включенном VIPEnabled.
func AvailableSongs(c *catalog.Catalog, st *State, stage int, blacklist Blacklist) []catalog.Song {
	songs := make([]catalog.Song, 0)
	if c == nil || c.StageCount() == 0 {
		return songs
	}

	stage = c.ClampStage(stage)
	from := 0
	if st.ClearPreviousStages {
		from = stage
	}
	hideVIP := c.Layout == catalog.FlatLayout && !st.VIPEnabled

	for i := from; i <= stage; i++ {
		for _, song := range c.Stages[i].Songs {
			if blacklist.Excluded(song.Name) {
				continue
			}
			if hideVIP && song.VIP {
				continue
			}
			songs = append(songs, song)
		}
	}
	return songs
}
