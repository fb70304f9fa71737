package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"gopkg.in/yaml.v3"
)

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	testConfig := Config{
		CatalogSource: "s3://songs/catalog.json",
		SnapshotFile:  filepath.Join(tempDir, "state.yaml"),
		DefaultSort:   "name",
		LabelWidth:    30,
		AwsBucketName: "test-bucket",
		AwsAccessKey:  "test-access-key",
		AwsSecretKey:  "test-secret-key",
		AwsRegion:     "us-east-1",
		AwsEndpoint:   "https://s3.amazonaws.com",
	}

	data, err := yaml.Marshal(testConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if diff := deep.Equal(*loadedConfig, testConfig); diff != nil {
		t.Error(diff)
	}
	if !loadedConfig.HasS3() {
		t.Error("Учетные данные S3 заданы")
	}
}

func TestDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "minimal_config.yaml")

	minimalConfig := map[string]string{
		"aws_bucket_name": "test-bucket",
		"aws_access_key":  "test-key",
	}

	data, err := yaml.Marshal(minimalConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	home, _ := os.UserHomeDir()
	if expected := filepath.Join(home, ".roulette-songs.json"); loadedConfig.CatalogSource != expected {
		t.Errorf("Ожидался CatalogSource по умолчанию: %s, получено: %s", expected, loadedConfig.CatalogSource)
	}
	if expected := filepath.Join(home, ".roulette-state.yaml"); loadedConfig.SnapshotFile != expected {
		t.Errorf("Ожидался SnapshotFile по умолчанию: %s, получено: %s", expected, loadedConfig.SnapshotFile)
	}
	if loadedConfig.DefaultSort != DefaultSort {
		t.Errorf("Ожидался DefaultSort: %s, получено: %s", DefaultSort, loadedConfig.DefaultSort)
	}
	if loadedConfig.AwsBucketName != "test-bucket" {
		t.Errorf("Ожидался AwsBucketName: test-bucket, получено: %s", loadedConfig.AwsBucketName)
	}
	if loadedConfig.HasS3() {
		t.Error("Без секретного ключа S3 не настроен")
	}

	if diff := deep.Equal(Default().SnapshotFile, loadedConfig.SnapshotFile); diff != nil {
		t.Error(diff)
	}
}

func TestLoadConfigNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yaml")

	if err == nil {
		t.Error("Ожидалась ошибка при загрузке несуществующего файла")
	}
	if !os.IsNotExist(err) {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid_config.yaml")

	invalidYAML := `aws_bucket_name: "test-bucket"
aws_access_key: "test-key"
invalid_field: [unclosed array
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Ожидалась ошибка при загрузке некорректного YAML")
	}
	if !strings.Contains(err.Error(), "yaml") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/songs.json", filepath.Join(home, "songs.json")},
		{"/abs/songs.json", "/abs/songs.json"},
		{"s3://bucket/songs.json", "s3://bucket/songs.json"},
		{"https://example.com/~user/songs.json", "https://example.com/~user/songs.json"},
	}

	for _, test := range tests {
		if got := ExpandHome(test.input); got != test.expected {
			t.Errorf("ExpandHome(%q) = %q; ожидалось %q", test.input, got, test.expected)
		}
	}
}

func TestNegativeLabelWidth(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("label_width: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if loadedConfig.LabelWidth != 0 {
		t.Errorf("Отрицательная ширина заменяется нулем, получено %d", loadedConfig.LabelWidth)
	}
}
