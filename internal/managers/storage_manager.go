package managers

import (
	"bytes"
	"context"
	"fmt"

	appconfig "contacts-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
)

// StorageMgr uploads avatars and returns the public URL of the stored object.
type StorageMgr interface {
	UploadAvatar(ctx context.Context, username, contentType string, data []byte) (string, error)
}

// ObjectPutter is the part of *s3.Client the storage manager needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StorageManager stores avatars in an S3 compatible bucket under avatars/{username}.
type StorageManager struct {
	client    ObjectPutter
	bucket    string
	publicURL string
}

// NewStorageManager wires an S3 client from cfg. A custom endpoint switches to path style
// addressing so that minio and similar servers work.
func NewStorageManager(ctx context.Context, cfg appconfig.StorageConfig) (*StorageManager, error) {
	log.Info("Initializing storage manager")

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = cfg.Endpoint
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}

	return NewStorageManagerWithClient(client, cfg.Bucket, publicURL), nil
}

// NewStorageManagerWithClient builds a StorageManager on top of an existing client.
func NewStorageManagerWithClient(client ObjectPutter, bucket, publicURL string) *StorageManager {
	return &StorageManager{client: client, bucket: bucket, publicURL: publicURL}
}

// UploadAvatar overwrites the avatar object of username.
func (sm *StorageManager) UploadAvatar(ctx context.Context, username, contentType string, data []byte) (string, error) {
	key := "avatars/" + username

	_, err := sm.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(sm.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", sm.publicURL, sm.bucket, key), nil
}
