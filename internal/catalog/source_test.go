package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeGetter struct {
	bucket, key string
	body        string
	err         error
}

func (g *fakeGetter) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	g.bucket, g.key = bucket, key
	if g.err != nil {
		return nil, g.err
	}
	return io.NopCloser(strings.NewReader(g.body)), nil
}

func TestNewSource(t *testing.T) {
	getter := &fakeGetter{}

	tests := []struct {
		location string
		want     string
	}{
		{"data.json", "*catalog.FileSource"},
		{"~/songs/data.json", "*catalog.FileSource"},
		{"http://example.com/data.json", "*catalog.HTTPSource"},
		{"https://example.com/data.json", "*catalog.HTTPSource"},
		{"s3://bucket/catalogs/data.json", "*catalog.S3Source"},
	}

	for _, test := range tests {
		src, err := NewSource(test.location, getter)
		if err != nil {
			t.Errorf("NewSource(%s): неожиданная ошибка %v", test.location, err)
			continue
		}
		if got := typeName(src); got != test.want {
			t.Errorf("NewSource(%s) = %s; ожидалось %s", test.location, got, test.want)
		}
		if src.String() != test.location {
			t.Errorf("String() = %s; ожидалось %s", src.String(), test.location)
		}
	}
}

func typeName(src Source) string {
	switch src.(type) {
	case *FileSource:
		return "*catalog.FileSource"
	case *HTTPSource:
		return "*catalog.HTTPSource"
	case *S3Source:
		return "*catalog.S3Source"
	default:
		return "unknown"
	}
}

func TestNewSourceErrors(t *testing.T) {
	if _, err := NewSource("", nil); err == nil {
		t.Error("Ожидалась ошибка для пустого адреса")
	}
	if _, err := NewSource("s3://bucket", &fakeGetter{}); err == nil {
		t.Error("Ожидалась ошибка для адреса без ключа")
	}
	if _, err := NewSource("s3://bucket/key.json", nil); err == nil {
		t.Error("Ожидалась ошибка без настроенного S3")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(stagedJSON), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(context.Background(), &FileSource{Path: path})
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if c.StageCount() != 2 {
		t.Errorf("Ожидалось 2 стадии, получено %d", c.StageCount())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), &FileSource{Path: "/non/existent/data.json"})
	if err == nil {
		t.Fatal("Ожидалась ошибка")
	}
	if !errors.Is(err, ErrCatalogLoad) {
		t.Errorf("Ошибка должна соответствовать ErrCatalogLoad: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Ошибка должна сохранять причину: %v", err)
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Source != "/non/existent/data.json" {
		t.Errorf("Ожидалась *LoadError с источником, получено %#v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"diffs": 42}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), &FileSource{Path: path})
	if !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("Ожидалась ErrCatalogLoad, получено %v", err)
	}
}

func TestLoadFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stagedJSON))
	}))
	defer server.Close()

	c, err := Load(context.Background(), NewHTTPSource(server.URL+"/data.json"))
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if c.StageName(0) != "Easy" {
		t.Errorf("Ожидалась стадия Easy, получено %q", c.StageName(0))
	}

	_, err = Load(context.Background(), NewHTTPSource(server.URL+"/missing.json"))
	if !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("Ожидалась ErrCatalogLoad, получено %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Ошибка должна содержать HTTP статус: %v", err)
	}
}

func TestLoadFromS3(t *testing.T) {
	getter := &fakeGetter{body: `{"songs":[{"name":"X"}]}`}
	src, err := NewSource("s3://songs/catalogs/data.json", getter)
	if err != nil {
		t.Fatal(err)
	}

	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if getter.bucket != "songs" || getter.key != "catalogs/data.json" {
		t.Errorf("Неверные bucket/key: %s/%s", getter.bucket, getter.key)
	}
	if c.Layout != FlatLayout {
		t.Errorf("Ожидался FlatLayout, получено %v", c.Layout)
	}

	getter.err = errors.New("AccessDenied")
	if _, err := Load(context.Background(), src); !errors.Is(err, ErrCatalogLoad) {
		t.Errorf("Ожидалась ErrCatalogLoad, получено %v", err)
	}
}
