package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/metadata"
	"github.com/hazadus/go-roulette/internal/s3"
	"github.com/hazadus/go-roulette/internal/uploader"
	"github.com/hazadus/go-roulette/internal/utils"
)

// createCatalogCommand создает группу команд для работы с документом каталога
func (app *Application) createCatalogCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build and publish catalog documents",
	}

	cmd.AddCommand(app.createCatalogBuildCommand())
	cmd.AddCommand(app.createCatalogPublishCommand(ctx))
	return cmd
}

func (app *Application) createCatalogBuildCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build [music directory]",
		Short: "Build a catalog document from a directory of audio files",
		Long: `Build a catalog from a directory: every subdirectory becomes a stage in
alphabetical order, a directory without subdirectories gives a flat catalog.
Song names are read from tags, or from "Artist - Title" file names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.buildCatalog(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; stdout when empty")

	return cmd
}

func (app *Application) buildCatalog(dir, output string) error {
	c, err := catalog.BuildFromDir(dir, metadata.NewExtractor())
	if err != nil {
		return err
	}

	if output == "" {
		return catalog.Encode(os.Stdout, c)
	}

	file, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "ошибка создания файла")
	}
	defer file.Close()

	if err := catalog.Encode(file, c); err != nil {
		return err
	}

	fmt.Printf("✅ Каталог записан в %s\n", output)
	fmt.Printf("   Стадий: %d, %s\n", c.StageCount(), utils.FormatCount(c.SongCount()))
	return nil
}

func (app *Application) createCatalogPublishCommand(ctx context.Context) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "publish [catalog file]",
		Short: "Upload a catalog document to S3 storage",
		Long:  `Validate a catalog document and upload it to the configured S3 bucket.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Создаем контекст с таймаутом для загрузки
			uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.publishCatalog(uploadCtx, args[0], key)
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "object key; file name when empty")

	return cmd
}

func (app *Application) publishCatalog(ctx context.Context, filePath, key string) error {
	if !app.Config.HasS3() {
		return errors.New("не заданы aws_access_key и aws_secret_key в конфигурации")
	}

	client, err := s3.NewClient(app.s3Config())
	if err != nil {
		return errors.Wrap(err, "ошибка создания S3 клиента")
	}

	fmt.Printf("📤 Публикуем каталог в S3:\n")
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)

	service := uploader.NewService(client)
	result, err := service.UploadFile(ctx, filePath, key, func(bytesRead int64) {
		fmt.Printf("\r📊 Отправлено: %s", uploader.FormatFileSize(bytesRead))
	})
	if err != nil {
		return err
	}

	// Проверяем, не была ли операция отменена
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "операция отменена")
	}

	fmt.Printf("\n✅ Каталог опубликован: %s (%s, %s)\n",
		result.URL, uploader.FormatFileSize(result.Size), utils.FormatCount(result.Catalog.SongCount()))
	fmt.Printf("💡 Укажите catalog_source: %s в %s\n", result.URL, defaultConfigPath)
	return nil
}
