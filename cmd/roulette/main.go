package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/config"
	"github.com/hazadus/go-roulette/internal/s3"
)

const (
	defaultConfigPath = "~/.roulette"
	// catalogLoadTimeout ограничивает однократную загрузку каталога из командной строки
	catalogLoadTimeout = 30 * time.Second
)

// Application содержит конфигурацию и общие параметры команд
type Application struct {
	Config *config.Config
	// catalogOverride задается флагом --catalog
	catalogOverride string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Загружаем конфигурацию; без файла работаем со значениями по умолчанию
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("Ошибка загрузки конфигурации: %v", err)
		}
		cfg = config.Default()
	}

	app := &Application{Config: cfg}
	if err := app.createRootCommand(ctx).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// catalogLocation возвращает адрес каталога с учетом флага --catalog
func (app *Application) catalogLocation() string {
	if app.catalogOverride != "" {
		return config.ExpandHome(app.catalogOverride)
	}
	return app.Config.CatalogSource
}

// s3Config собирает настройки S3 из конфигурации
func (app *Application) s3Config() *s3.Config {
	return &s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	}
}

// openSource создает источник каталога. Клиент S3 создается только
// при наличии учетных данных.
func (app *Application) openSource() (catalog.Source, error) {
	var getter catalog.ObjectGetter
	if app.Config.HasS3() {
		client, err := s3.NewClient(app.s3Config())
		if err != nil {
			return nil, err
		}
		getter = client
	}
	return catalog.NewSource(app.catalogLocation(), getter)
}

// loadCatalog однократно загружает каталог
func (app *Application) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	src, err := app.openSource()
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, catalogLoadTimeout)
	defer cancel()
	return catalog.Load(loadCtx, src)
}
