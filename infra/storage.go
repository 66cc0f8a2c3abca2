package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	appConfig "github.com/obrunogonzaga/formatura-2025/config"
)

// PresignExpiry is how long a presigned PUT URL stays valid. The client must
// finish the direct upload before the storage service starts rejecting it.
const PresignExpiry = 15 * time.Minute

// StorageClient issues presigned PUT URLs against the S3-compatible storage
// and projects public read URLs for persisted object keys. Presigning signs
// the request locally; no network round-trip is involved.
type StorageClient struct {
	Presign        *s3.PresignClient
	Bucket         string
	PublicEndpoint string
}

func NewStorageClient(endpoint, region, accessKey, secretKey, bucket, publicEndpoint string, pathStyle bool) (*StorageClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = pathStyle
	})

	return &StorageClient{
		Presign:        s3.NewPresignClient(client),
		Bucket:         bucket,
		PublicEndpoint: strings.TrimRight(publicEndpoint, "/"),
	}, nil
}

func InitStorageClient(cfg *appConfig.EnvConfig) *StorageClient {
	if cfg.S3.Endpoint == "" {
		panic("S3 endpoint is not configured")
	}
	if cfg.S3.Bucket == "" {
		panic("S3 bucket is not configured")
	}
	if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
		panic("S3 credentials are not configured")
	}

	client, err := NewStorageClient(
		cfg.S3.PresignEndpoint,
		cfg.S3.Region,
		cfg.S3.AccessKey,
		cfg.S3.SecretKey,
		cfg.S3.Bucket,
		cfg.S3.PublicEndpoint,
		cfg.S3.ForcePathStyle,
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize storage client: %v", err))
	}

	return client
}

// PresignPutObject returns a time-limited URL authorizing one direct PUT of
// the given object key with the given content type. Re-issuing a URL for the
// same key has no side effect on storage.
func (s *StorageClient) PresignPutObject(ctx context.Context, objectKey, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Setting ContentType on the input alone leaves the header out of the
	// signature (X-Amz-SignedHeaders stays "host"), so storage would accept
	// a PUT with any content type. Placing the header on the request before
	// signing binds it into the URL.
	req, err := s.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	},
		s3.WithPresignExpires(PresignExpiry),
		func(o *s3.PresignOptions) {
			o.ClientOptions = append(o.ClientOptions, s3.WithAPIOptions(
				smithyhttp.AddHeaderValue("Content-Type", contentType),
			))
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign put for %s: %w", objectKey, err)
	}

	return req.URL, nil
}

// PublicObjectURL builds the public read URL for a stored object key. The
// bucket is expected to be publicly readable; see the bucket bootstrap in
// InitInfra.
func (s *StorageClient) PublicObjectURL(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", s.PublicEndpoint, s.Bucket, objectKey)
}
