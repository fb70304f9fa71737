package session

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/hazadus/go-roulette/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Layout: catalog.StagedLayout,
		Stages: []catalog.Stage{
			{Name: "Easy", Songs: songs("A", "B")},
			{Name: "Hard", Songs: songs("C")},
			{Name: "Expert", Songs: songs("D", "A")},
		},
	}
}

func songs(names ...string) []catalog.Song {
	out := make([]catalog.Song, len(names))
	for i, name := range names {
		out[i] = catalog.Song{Name: name}
	}
	return out
}

func cumulativeState() *State {
	st := DefaultState()
	st.ClearPreviousStages = false
	return st
}

func TestAvailableSongsScenario(t *testing.T) {
	c := &catalog.Catalog{
		Layout: catalog.StagedLayout,
		Stages: []catalog.Stage{
			{Name: "Easy", Songs: songs("A", "B")},
			{Name: "Hard", Songs: songs("C")},
		},
	}
	st := cumulativeState()

	if diff := deep.Equal(AvailableSongs(c, st, 1, st.SongBlacklist), songs("A", "B", "C")); diff != nil {
		t.Error(diff)
	}

	st.SongBlacklist["B"] = true
	if diff := deep.Equal(AvailableSongs(c, st, 1, st.SongBlacklist), songs("A", "C")); diff != nil {
		t.Error(diff)
	}
}

func TestAvailableSongsClearPrevious(t *testing.T) {
	c := testCatalog()
	st := DefaultState()

	tests := []struct {
		stage  int
		expect []catalog.Song
	}{
		{-1, songs("A", "B")},
		{0, songs("A", "B")},
		{1, songs("C")},
		{2, songs("D", "A")},
		{10, songs("D", "A")},
	}

	for _, test := range tests {
		got := AvailableSongs(c, st, test.stage, Blacklist{})
		if diff := deep.Equal(got, test.expect); diff != nil {
			t.Errorf("stage %d: %v", test.stage, diff)
		}
	}
}

func TestAvailableSongsCumulativeKeepsDuplicates(t *testing.T) {
	got := AvailableSongs(testCatalog(), cumulativeState(), 2, Blacklist{})
	if diff := deep.Equal(got, songs("A", "B", "C", "D", "A")); diff != nil {
		t.Error(diff)
	}

	got = AvailableSongs(testCatalog(), cumulativeState(), 2, Blacklist{"A": true})
	if diff := deep.Equal(got, songs("B", "C", "D")); diff != nil {
		t.Error(diff)
	}
}

func TestAvailableSongsNeverReturnsBlacklisted(t *testing.T) {
	c := testCatalog()
	blacklists := []Blacklist{
		{},
		{"A": true},
		{"A": false, "C": true},
		{"A": true, "B": true, "C": true, "D": true},
	}

	for _, clearPrev := range []bool{true, false} {
		st := DefaultState()
		st.ClearPreviousStages = clearPrev
		for _, bl := range blacklists {
			for stage := -1; stage <= 3; stage++ {
				for _, song := range AvailableSongs(c, st, stage, bl) {
					if bl[song.Name] {
						t.Errorf("clear=%v stage=%d: исключенная песня %s в результате", clearPrev, stage, song.Name)
					}
				}
			}
		}
	}
}

func TestAvailableSongsCumulativeSuperset(t *testing.T) {
	c := testCatalog()
	st := cumulativeState()

	for stage := 1; stage < c.StageCount(); stage++ {
		count := func(list []catalog.Song) map[string]int {
			m := make(map[string]int)
			for _, song := range list {
				m[song.Name]++
			}
			return m
		}
		prev := count(AvailableSongs(c, st, stage-1, Blacklist{}))
		cur := count(AvailableSongs(c, st, stage, Blacklist{}))
		for name, n := range prev {
			if cur[name] < n {
				t.Errorf("stage %d: песня %s встречается %d раз, ожидалось не меньше %d", stage, name, cur[name], n)
			}
		}
	}
}

func TestAvailableSongsAllBlacklisted(t *testing.T) {
	got := AvailableSongs(testCatalog(), DefaultState(), 1, Blacklist{"C": true})
	if got == nil || len(got) != 0 {
		t.Errorf("Ожидался пустой (не nil) список, получено %#v", got)
	}
}

func TestAvailableSongsFlatVIP(t *testing.T) {
	c := &catalog.Catalog{
		Layout: catalog.FlatLayout,
		Stages: []catalog.Stage{{Songs: []catalog.Song{{Name: "X"}, {Name: "Y", VIP: true}, {Name: "Z"}}}},
	}
	st := DefaultState()

	if diff := deep.Equal(AvailableSongs(c, st, 0, Blacklist{}), songs("X", "Z")); diff != nil {
		t.Error(diff)
	}

	st.VIPEnabled = true
	expected := []catalog.Song{{Name: "X"}, {Name: "Y", VIP: true}, {Name: "Z"}}
	if diff := deep.Equal(AvailableSongs(c, st, 0, Blacklist{}), expected); diff != nil {
		t.Error(diff)
	}
}

func TestAvailableSongsNilCatalog(t *testing.T) {
	if got := AvailableSongs(nil, DefaultState(), 0, Blacklist{}); len(got) != 0 {
		t.Errorf("Ожидался пустой список, получено %v", got)
	}
}
