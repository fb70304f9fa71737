package main

import (
	"context"
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/session"
	"github.com/hazadus/go-roulette/internal/utils"
	"github.com/hazadus/go-roulette/internal/view"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	var (
		flags sessionFlags
		sort  string
		match string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List songs of a stage",
		Long: `List every song of a stage, including blacklisted ones, in the chosen sort order.
Blacklisted songs are marked with W (whitelist), available ones with B (blacklist).`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if sort == "" {
				sort = app.Config.DefaultSort
			}
			return app.listSongs(ctx, &flags, session.SortMode(sort), match)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&sort, "sort", "", "sort mode: name, availability or availabilityAndName")
	cmd.Flags().StringVarP(&match, "match", "m", "", "fuzzy filter by song name")

	return cmd
}

func (app *Application) listSongs(ctx context.Context, flags *sessionFlags, mode session.SortMode, match string) error {
	c, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	store, err := flags.newStore(c)
	if err != nil {
		return err
	}
	if err := store.SetSortMode(mode); err != nil {
		return err
	}
	store.ToggleSongList()

	snapshot := view.Build(store, view.Options{LabelWidth: app.Config.LabelWidth})

	rows := make([]view.Row, 0, len(snapshot.SongList.Rows))
	for _, row := range snapshot.SongList.Rows {
		if match == "" || fuzzy.MatchNormalizedFold(match, row.Name) {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		fmt.Println("📚 Песни не найдены.")
		return nil
	}

	st := store.State()
	if c.Layout == catalog.StagedLayout {
		fmt.Printf("📚 Стадия %s: %s\n", c.StageName(st.CurrentStage), utils.FormatCount(len(rows)))
	} else {
		fmt.Printf("📚 Каталог: %s\n", utils.FormatCount(len(rows)))
	}
	fmt.Printf("   Доступно: %s • Сортировка: %s\n\n",
		snapshot.Region(view.RegionAvailSongs).Values[view.TokenSongCount], snapshot.SongList.SortLabel)

	width := app.Config.LabelWidth
	if width <= 0 {
		width = view.LabelWidthFor(c.Layout)
	}
	for _, row := range rows {
		fmt.Printf("[%s] %s%s\n", row.Toggle,
			utils.PadRight(row.Label, width+len(utils.Ellipsis)), statusMark(row.Status))
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'roulette pick' для выбора случайной песни")
	return nil
}

func statusMark(status view.RowStatus) string {
	switch status {
	case view.RowBlacklisted:
		return " 🚫"
	case view.RowSelected:
		return " ✅"
	default:
		return ""
	}
}
