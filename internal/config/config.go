// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultCatalogSource = "~/.roulette-songs.json"
	DefaultSnapshotFile  = "~/.roulette-state.yaml"
	DefaultSort          = "availability"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	CatalogSource string `yaml:"catalog_source"`
	SnapshotFile  string `yaml:"snapshot_file"`
	DefaultSort   string `yaml:"default_sort"`
	// LabelWidth бюджет длины подписи в списке песен; 0 - по форме каталога
	LabelWidth    int    `yaml:"label_width"`
	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// Default возвращает конфигурацию по умолчанию с раскрытыми путями
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// HasS3 сообщает, заданы ли учетные данные S3
func (c *Config) HasS3() bool {
	return c.AwsAccessKey != "" && c.AwsSecretKey != ""
}

// LoadConfig загружает конфигурацию приложения из указанного файла
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(ExpandHome(filePath))
	if err != nil {
		return nil, err
	}

	config := &Config{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}

// applyDefaults заполняет незаданные поля и раскрывает тильду в путях
func (c *Config) applyDefaults() {
	if c.CatalogSource == "" {
		c.CatalogSource = DefaultCatalogSource
	}
	if c.SnapshotFile == "" {
		c.SnapshotFile = DefaultSnapshotFile
	}
	if c.DefaultSort == "" {
		c.DefaultSort = DefaultSort
	}
	if c.LabelWidth < 0 {
		c.LabelWidth = 0
	}

	c.CatalogSource = ExpandHome(c.CatalogSource)
	c.SnapshotFile = ExpandHome(c.SnapshotFile)
}

// ExpandHome раскрывает ведущую тильду в пути.
// Адреса s3:// и http(s):// не меняются.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return strings.Replace(path, "~", home, 1)
}
