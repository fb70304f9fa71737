package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "roulette",
		Short: "Pick a random song from a staged song catalog",
		Long: `A terminal song roulette: browse a catalog of songs grouped by difficulty
stages, blacklist songs and pick a random one from what is left.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.catalogOverride, "catalog", "",
		"catalog location: file path, http(s):// URL or s3://bucket/key")

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createTUICommand(ctx))
	rootCmd.AddCommand(app.createPickCommand(ctx))
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createStagesCommand(ctx))
	rootCmd.AddCommand(app.createCatalogCommand(ctx))

	return rootCmd
}
