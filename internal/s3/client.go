// Package s3 предоставляет доступ к документам каталога в Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// objectAPI часть S3 API для чтения объектов
type objectAPI interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// uploadAPI часть s3manager для загрузки объектов
type uploadAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Client читает и публикует документы каталога
type Client struct {
	objects  objectAPI
	uploader uploadAPI
	config   *Config
}

// NewClient создает новый S3 клиент
func NewClient(config *Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания AWS сессии")
	}

	return &Client{
		objects:  s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		config:   config,
	}, nil
}

// GetObject открывает объект bucket/key. Пустой bucket заменяется бакетом из конфигурации.
func (c *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if bucket == "" {
		bucket = c.config.BucketName
	}

	out, err := c.objects.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка получения s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}

// UploadFile загружает документ в бакет из конфигурации и возвращает его адрес
func (c *Client) UploadFile(ctx context.Context, reader io.Reader, key string) (string, error) {
	if c.config.BucketName == "" {
		return "", errors.New("не задан aws_bucket_name")
	}

	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки")
	}

	return fmt.Sprintf("s3://%s/%s", c.config.BucketName, key), nil
}
