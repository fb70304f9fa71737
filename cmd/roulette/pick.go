package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/session"
)

// sessionFlags общие флаги команд, которые работают с состоянием сессии
type sessionFlags struct {
	stage      int
	exclude    []string
	cumulative bool
	vip        bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.stage, "stage", "s", 0, "stage index, starting from 0")
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "x", nil, "song names to blacklist")
	cmd.Flags().BoolVar(&f.cumulative, "cumulative", false, "include songs of all previous stages")
	cmd.Flags().BoolVar(&f.vip, "vip", false, "include VIP songs of a flat catalog")
}

// newStore строит хранилище состояния по флагам. Неизвестные имена в --exclude
// считаются ошибкой.
func (f *sessionFlags) newStore(c *catalog.Catalog, opts ...session.Option) (*session.Store, error) {
	st := session.DefaultState()
	st.CurrentStage = f.stage
	st.ClearPreviousStages = !f.cumulative
	st.VIPEnabled = f.vip
	for _, name := range f.exclude {
		if !c.Contains(name) {
			return nil, errors.Wrapf(session.ErrUnknownSong, "%q", name)
		}
		st.SongBlacklist[name] = true
	}

	store := session.NewStore(c, opts...)
	if err := store.Restore(st); err != nil {
		return nil, err
	}
	return store, nil
}

// createPickCommand создает команду pick с привязкой к экземпляру приложения
func (app *Application) createPickCommand(ctx context.Context) *cobra.Command {
	var (
		flags sessionFlags
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a random available song",
		Long:  `Pick a random song among the songs available on a stage after applying the blacklist.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.pickSong(ctx, &flags, seed)
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for a reproducible pick; 0 means random")

	return cmd
}

func (app *Application) pickSong(ctx context.Context, flags *sessionFlags, seed int64) error {
	c, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	var opts []session.Option
	if seed != 0 {
		opts = append(opts, session.WithRandSource(rand.NewSource(seed)))
	}
	store, err := flags.newStore(c, opts...)
	if err != nil {
		return err
	}

	st := store.State()
	available := store.AvailableSongs(st.CurrentStage, st.SongBlacklist)
	song, err := store.PickRandomSong(st.CurrentStage, st.SongBlacklist)
	if errors.Is(err, session.ErrNoAvailableSongs) {
		fmt.Println("😔 Нет доступных песен: все песни стадии исключены")
		return err
	}
	if err != nil {
		return err
	}

	if c.Layout == catalog.StagedLayout {
		fmt.Printf("🎚  Стадия: %s\n", c.StageName(st.CurrentStage))
	}
	fmt.Printf("🎲 Случайная песня: %s\n", song.Name)
	fmt.Printf("   Выбрана из %d доступных\n", len(available))
	return nil
}
