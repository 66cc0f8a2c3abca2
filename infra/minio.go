package infra

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	appConfig "github.com/obrunogonzaga/formatura-2025/config"
)

// MinioClient handles bucket bootstrap: making sure the photo bucket exists
// and is publicly readable, so the listing endpoint's plain URLs resolve.
type MinioClient struct {
	Client   *minio.Client
	Endpoint string
}

// splitEndpoint accepts either "host:port" or a full URL and returns the
// host part plus whether TLS should be used.
func splitEndpoint(endpoint string) (string, bool) {
	if strings.Contains(endpoint, "://") {
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			return u.Host, u.Scheme == "https"
		}
	}
	return endpoint, false
}

func InitMinioClient(cfg *appConfig.EnvConfig) *MinioClient {
	endpoint := cfg.S3.Endpoint
	if endpoint == "" {
		panic("S3 endpoint is not configured")
	}

	host, secure := splitEndpoint(endpoint)

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		Secure: secure,
		Region: cfg.S3.Region,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Client:   client,
		Endpoint: endpoint,
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName, region string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: region})
		if err != nil {
			// Another process may have created it in between.
			exists, errExists := m.Client.BucketExists(ctx, bucketName)
			if errExists == nil && exists {
				return nil
			}
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// SetBucketPublicRead allows anonymous GetObject on the whole bucket.
func (m *MinioClient) SetBucketPublicRead(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	policyJSON := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucketName)

	if err := m.Client.SetBucketPolicy(ctx, bucketName, policyJSON); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}
