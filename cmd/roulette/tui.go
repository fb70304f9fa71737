package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-roulette/internal/session"
	"github.com/hazadus/go-roulette/internal/tui"
	tuiapp "github.com/hazadus/go-roulette/internal/tui/app"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the interactive song roulette. The saved session is restored unless --fresh is given.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI(ctx, !fresh)
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "start with a default session instead of the saved one")

	return cmd
}

func (app *Application) tuiOptions(restore bool) (tuiapp.Options, error) {
	src, err := app.openSource()
	if err != nil {
		return tuiapp.Options{}, err
	}

	mode := session.SortMode(app.Config.DefaultSort)
	if _, err := session.LookupSort(mode); err != nil {
		return tuiapp.Options{}, errors.Wrap(err, "default_sort")
	}

	return tuiapp.Options{
		Source:       src,
		SnapshotFile: app.Config.SnapshotFile,
		SortMode:     mode,
		LabelWidth:   app.Config.LabelWidth,
		Restore:      restore,
	}, nil
}

func (app *Application) launchTUI(ctx context.Context, restore bool) error {
	opts, err := app.tuiOptions(restore)
	if err != nil {
		return err
	}

	// Создаем и запускаем TUI приложение
	return tui.NewApp(opts).Run(ctx)
}
