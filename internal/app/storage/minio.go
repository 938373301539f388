package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"designer/internal/app/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const snapshotURLTTL = time.Hour

type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient создает клиент для MinIO и бакет для снимков проектов
func NewMinIOClient(ctx context.Context, cfg config.MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Bucket)
	}

	return &MinIOClient{
		client:     client,
		bucketName: cfg.Bucket,
	}, nil
}

// SnapshotName - имя объекта для снимка проекта
func SnapshotName(projectID uint, now time.Time) string {
	return fmt.Sprintf("project_%d_%s_%d.json", projectID, uuid.New().String()[:8], now.Unix())
}

// UploadSnapshot сохраняет содержимое проекта и возвращает ссылку на скачивание (1 час)
func (m *MinIOClient) UploadSnapshot(ctx context.Context, projectID uint, content []byte) (string, error) {
	name := SnapshotName(projectID, time.Now())

	_, err := m.client.PutObject(ctx, m.bucketName, name, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	logrus.Infof("Snapshot %s uploaded successfully", name)

	url, err := m.client.PresignedGetObject(ctx, m.bucketName, name, snapshotURLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}
