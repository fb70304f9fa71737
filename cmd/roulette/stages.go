package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/utils"
)

// createStagesCommand создает команду stages с привязкой к экземпляру приложения
func (app *Application) createStagesCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List catalog stages",
		Long:  `Display the stages of the catalog with the number of songs in each.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listStages(ctx)
		},
	}
}

func (app *Application) listStages(ctx context.Context) error {
	c, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	if c.Layout == catalog.FlatLayout {
		fmt.Printf("📚 Каталог без стадий: %s\n", utils.FormatCount(c.SongCount()))
		return nil
	}

	fmt.Printf("📚 Стадий: %d, всего %s\n\n", c.StageCount(), utils.FormatCount(c.SongCount()))
	for i, stage := range c.Stages {
		fmt.Printf("%3d. %s (%s)\n", i, stage.Name, utils.FormatCount(len(stage.Songs)))
	}
	return nil
}
