package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	pkglogger "github.com/BjornOnGit/adec-web/pkg/logger"
)

// Key prefixes per upload class
const (
	PrefixAvatars    = "avatars"
	PrefixDocuments  = "documents"
	PrefixBlogImages = "blog-images"
)

// S3Config settings for S3-compatible storage (AWS, R2, MinIO)
type S3Config struct {
	Endpoint        string // empty for AWS; custom for R2/MinIO
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	CDNURL          string // optional public base URL in front of the bucket
	BasePath        string // prefix applied to every key
	ForcePathStyle  bool   // required for MinIO and most R2 setups
}

// S3Client uploads, deletes and presigns objects in one bucket
type S3Client struct {
	client   *s3.Client
	bucket   string
	cdnURL   string
	basePath string
}

// NewS3Client builds the storage client from static credentials
func NewS3Client(cfg S3Config) (*S3Client, error) {
	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	pkglogger.Get().Info().
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("S3 storage client initialized")

	return &S3Client{
		client:   client,
		bucket:   cfg.Bucket,
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
		basePath: cfg.BasePath,
	}, nil
}

// UploadResult describes a stored object. URL points at the CDN when
// one is configured, otherwise directly at the bucket.
type UploadResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Upload stores the object under basePath+key
func (c *S3Client) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*UploadResult, error) {
	fullKey := c.basePath + key

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload failed: %w", err)
	}

	return &UploadResult{
		Key:         fullKey,
		URL:         c.publicURL(fullKey),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Delete removes the object. Missing keys are not an error.
func (c *S3Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}

// GetPresignedURL returns a time-limited direct download URL
func (c *S3Client) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigner := s3.NewPresignClient(c.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign failed: %w", err)
	}
	return req.URL, nil
}

func (c *S3Client) publicURL(key string) string {
	if c.cdnURL != "" {
		return c.cdnURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key)
}

// GenerateKey builds a collision-free key: prefix/yyyy/mm/sanitized-name_id.ext
func GenerateKey(prefix, filename string) string {
	now := time.Now().UTC()
	ext := strings.ToLower(path.Ext(filename))
	base := sanitizeName(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	return fmt.Sprintf("%s/%d/%02d/%s_%s%s",
		prefix, now.Year(), now.Month(), base, uuid.New().String()[:8], ext)
}

// sanitizeName keeps keys URL-safe: lowercase, alphanumerics and
// dashes only
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "file"
	}
	return out
}
