package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ResumeGateway uploads resume files and hands back a permanent content URL.
// Implemented against any S3-compatible store.
type ResumeGateway interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}

// S3Config holds configuration for S3-compatible storage
type S3Config struct {
	Endpoint        string // empty for AWS; custom for MinIO/Wasabi/etc.
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string // base URL the bucket is served from
}

type s3Gateway struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Gateway creates a ResumeGateway backed by S3-compatible storage.
func NewS3Gateway(ctx context.Context, cfg S3Config) (ResumeGateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// Non-AWS providers need an explicit endpoint and path-style addressing
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &s3Gateway{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload stores the file under a fresh key and returns its public URL.
// Earlier uploads for the same user are superseded, never deleted.
func (g *s3Gateway) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	key := "resumes/" + uuid.NewString() + sanitizeExt(filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := g.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}

	return g.publicBaseURL + "/" + key, nil
}

// sanitizeExt keeps only a plain file extension so user-supplied names can
// never influence the object path.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
