package services

import (
  "context"
  "fmt"
  "io"
  "os"
  "time"

  "cloud.google.com/go/storage"
  "google.golang.org/api/option"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
)

// BucketService wraps the GCS bucket that holds generated avatars and
// exported report files.
type BucketService interface {
  UploadFile(ctx context.Context, tx *gorm.DB, key string, body io.Reader) error
  DeleteFile(ctx context.Context, tx *gorm.DB, key string) error
  GetPublicURL(key string) string
}

type bucketService struct {
  log        *logger.Logger
  client     *storage.Client
  bucketName string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
  serviceLog := log.With("service", "BucketService")
  bucketName := os.Getenv("GCS_BUCKET_NAME")
  if bucketName == "" {
    return nil, fmt.Errorf("env var GCS_BUCKET_NAME is empty")
  }
  ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()
  var opts []option.ClientOption
  if credPath := os.Getenv("GCS_CREDENTIALS_JSON_PATH"); credPath != "" {
    opts = append(opts, option.WithCredentialsFile(credPath))
  }
  client, err := storage.NewClient(ctx, opts...)
  if err != nil {
    return nil, fmt.Errorf("failed to create GCS client: %w", err)
  }
  serviceLog.Info("Connected to GCS bucket", "bucket", bucketName)
  return &bucketService{
    log:        serviceLog,
    client:     client,
    bucketName: bucketName,
  }, nil
}

func (bs *bucketService) UploadFile(ctx context.Context, tx *gorm.DB, key string, body io.Reader) error {
  writer := bs.client.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
  if _, err := io.Copy(writer, body); err != nil {
    writer.Close()
    bs.log.Warn("Failed writing object to bucket", "key", key, "error", err)
    return fmt.Errorf("failed writing object %q: %w", key, err)
  }
  if err := writer.Close(); err != nil {
    bs.log.Warn("Failed closing bucket writer", "key", key, "error", err)
    return fmt.Errorf("failed closing writer for %q: %w", key, err)
  }
  bs.log.Debug("Uploaded object to bucket", "key", key)
  return nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, tx *gorm.DB, key string) error {
  if err := bs.client.Bucket(bs.bucketName).Object(key).Delete(ctx); err != nil {
    bs.log.Warn("Failed deleting object from bucket", "key", key, "error", err)
    return fmt.Errorf("failed deleting object %q: %w", key, err)
  }
  return nil
}

func (bs *bucketService) GetPublicURL(key string) string {
  return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
