package catalog

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// maxDocumentSize ограничивает размер читаемого документа каталога
const maxDocumentSize = 16 << 20

// LoadError описывает неудачную загрузку каталога из источника
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("не удалось загрузить каталог из %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать любую ошибку загрузки с ErrCatalogLoad
func (e *LoadError) Is(target error) bool {
	return target == ErrCatalogLoad
}

// Source источник документа каталога
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// ObjectGetter получает объект из объектного хранилища
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// NewSource выбирает источник по виду адреса: s3://bucket/key, http(s)://... или путь к файлу.
// getter нужен только для s3-адресов.
func NewSource(location string, getter ObjectGetter) (Source, error) {
	switch {
	case location == "":
		return nil, errors.New("не указан источник каталога")

	case strings.HasPrefix(location, "s3://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, errors.Wrapf(err, "неверный адрес %s", location)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, errors.Errorf("адрес %s должен иметь вид s3://bucket/key", location)
		}
		if getter == nil {
			return nil, errors.Errorf("для %s не настроен доступ к S3", location)
		}
		return &S3Source{Bucket: u.Host, Key: key, getter: getter}, nil

	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location), nil

	default:
		return &FileSource{Path: location}, nil
	}
}

// Load однократно получает документ из источника и разбирает его.
// Повторов и таймаута нет: их задает вызывающий через ctx.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	rc, err := src.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize+1))
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: errors.Wrap(err, "ошибка чтения")}
	}
	if len(data) > maxDocumentSize {
		return nil, &LoadError{Source: src.String(), Err: errors.New("документ слишком большой")}
	}

	c, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	return c, nil
}

// FileSource читает каталог из локального файла
type FileSource struct {
	Path string
}

// Fetch открывает файл, раскрывая тильду в пути
func (s *FileSource) Fetch(_ context.Context) (io.ReadCloser, error) {
	path := s.Path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = strings.Replace(path, "~", home, 1)
	}
	return os.Open(path)
}

func (s *FileSource) String() string {
	return s.Path
}

// HTTPSource загружает каталог по HTTP
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource создает HTTP-источник с таймаутами соединения
func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{
		URL: rawURL,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          2,
			},
		},
	}
}

// Fetch выполняет GET-запрос и возвращает тело ответа
func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания запроса")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "go-roulette/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка выполнения запроса")
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return resp.Body, nil
}

func (s *HTTPSource) String() string {
	return s.URL
}

// S3Source загружает каталог из бакета S3
type S3Source struct {
	Bucket string
	Key    string
	getter ObjectGetter
}

// Fetch получает объект через ObjectGetter
func (s *S3Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	return s.getter.GetObject(ctx, s.Bucket, s.Key)
}

func (s *S3Source) String() string {
	return "s3://" + s.Bucket + "/" + s.Key
}
