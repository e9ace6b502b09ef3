package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioService stores product images in a single bucket.
type MinioService interface {
	UploadImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	EnsureBucketExists(ctx context.Context) error
	Ping(ctx context.Context) error
}

type minioClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioService builds a client for endpoint. publicURL, when set, is the base used for the
// returned object URLs; otherwise the endpoint itself is used.
func NewMinioService(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (MinioService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}
	return &minioClient{client: client, bucket: bucket, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

func (m *minioClient) UploadImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return m.objectURL(objectName), nil
}

func (m *minioClient) DeleteImage(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
}

func (m *minioClient) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Ping checks that the configured bucket is reachable.
func (m *minioClient) Ping(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}

func (m *minioClient) objectURL(objectName string) string {
	return m.publicURL + "/" + url.PathEscape(m.bucket) + "/" + objectName
}
