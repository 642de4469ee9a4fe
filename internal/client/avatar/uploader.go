package avatar

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

// Uploader stores a local avatar file and returns the reference the API
// should keep for it.
type Uploader interface {
	Upload(ctx context.Context, userID, ref string) (string, error)
}

// PutObjectAPI is the part of *s3.Client used by S3Uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config describes the bucket avatars are uploaded to.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PublicURL is prepended to the object key to form the stored reference.
	// Without it the bare key is stored.
	PublicURL string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig
	openFile             = os.Open
)

// NewS3Client builds an S3 client for cfg. A custom endpoint (e.g. MinIO)
// switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Uploader puts avatars under avatars/<user id>/ in a bucket.
type S3Uploader struct {
	api       PutObjectAPI
	bucket    string
	publicURL string
	log       logging.Logger
	newKey    func() string
}

func NewS3Uploader(api PutObjectAPI, bucket, publicURL string, log logging.Logger) *S3Uploader {
	return &S3Uploader{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
		newKey:    func() string { return uuid.NewString() },
	}
}

// Upload sends the file at ref. References that are already remote
// (http or https URLs) are returned unchanged. A file that has grown past
// MaxSize since it was selected is refused with the same message as at
// selection time.
func (u *S3Uploader) Upload(ctx context.Context, userID, ref string) (string, error) {
	if isRemote(ref) {
		return ref, nil
	}

	f, err := openFile(ref)
	if err != nil {
		return "", fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat avatar: %w", err)
	}
	if fi.Size() > MaxSize {
		u.log.Info(ctx, "avatar rejected at upload", "ref", ref, "size", fi.Size())
		return "", apperr.Domain(apperr.MessageImageTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(ref))
	key := fmt.Sprintf("avatars/%s/%s%s", userID, u.newKey(), ext)

	in := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(fi.Size()),
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err := u.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	u.log.Info(ctx, "avatar uploaded", "bucket", u.bucket, "key", key)

	if u.publicURL == "" {
		return key, nil
	}
	return u.publicURL + "/" + key, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
