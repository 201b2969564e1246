package testutil

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MinioUser     = "relic"
	MinioPassword = "relicpassword"
	MinioRegion   = "us-east-1"
)

// MinioContainer represents an S3-compatible MinIO container for testing
type MinioContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// NewMinioContainer creates and starts a MinIO container. It is terminated
// when the test finishes.
func NewMinioContainer(ctx context.Context, t *testing.T) *MinioContainer {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:RELEASE.2025-04-22T22-12-26Z",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     MinioUser,
			"MINIO_ROOT_PASSWORD": MinioPassword,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to create minio container: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "9000")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return &MinioContainer{
		Container: container,
		Host:      host,
		Port:      port.Port(),
	}
}

// Endpoint returns the MinIO endpoint URL
func (mc *MinioContainer) Endpoint() string {
	return fmt.Sprintf("http://%s:%s", mc.Host, mc.Port)
}

// Client returns a path-style S3 client with root credentials.
func (mc *MinioContainer) Client() *s3.Client {
	return s3.New(s3.Options{
		Region:       MinioRegion,
		BaseEndpoint: aws.String(mc.Endpoint()),
		Credentials:  credentials.NewStaticCredentialsProvider(MinioUser, MinioPassword, ""),
		UsePathStyle: true,
	})
}

// SeedBucket creates bucket and uploads objects keyed by object key.
func (mc *MinioContainer) SeedBucket(ctx context.Context, t *testing.T, bucket string, objects map[string][]byte) {
	t.Helper()

	client := mc.Client()
	if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		t.Fatalf("failed to create bucket %s: %v", bucket, err)
	}

	for key, body := range objects {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(body),
		})
		if err != nil {
			t.Fatalf("failed to upload %s: %v", key, err)
		}
	}
}
