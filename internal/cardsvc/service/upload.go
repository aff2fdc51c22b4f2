package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	MaxUploadSize = 10 << 20

	thumbMaxDim  = 300
	thumbQuality = 60
)

// ObjectUploader stores a blob and returns its public URL.
type ObjectUploader interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Uploader writes to an S3 compatible bucket (AWS, MinIO, R2).
type S3Uploader struct {
	client *s3.Client
	cfg    S3Config
}

func NewS3Uploader(ctx context.Context, c S3Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Uploader{client: client, cfg: c}, nil
}

func (u *S3Uploader) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.publicURL(key), nil
}

func (u *S3Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.Endpoint != "" {
		return strings.TrimRight(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}

type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type UploadService struct {
	uploader ObjectUploader
}

func NewUploadService(uploader ObjectUploader) *UploadService {
	return &UploadService{uploader: uploader}
}

// Upload stores an image under templates/ and optionally a JPEG thumbnail
// that fits in 300x300.
func (s *UploadService) Upload(ctx context.Context, filename string, body []byte, thumbnail bool) (*UploadResult, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: no file", ErrValidation)
	}
	if len(body) > MaxUploadSize {
		return nil, fmt.Errorf("%w: file larger than 10MB", ErrValidation)
	}
	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s is not an image", ErrValidation, contentType)
	}

	key := StorageKey(filename)
	url, err := s.uploader.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}
	res := &UploadResult{URL: url}

	if thumbnail {
		thumb, err := Thumbnail(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		thumbKey := strings.TrimSuffix(key, path.Ext(key)) + "_thumb.jpg"
		res.ThumbnailURL, err = s.uploader.Put(ctx, thumbKey, "image/jpeg", thumb)
		if err != nil {
			return nil, err
		}
	}
	log.Infof("uploaded %s (%d bytes)", key, len(body))
	return res, nil
}

// StorageKey builds templates/<yyyy>/<mm>/<uuid><ext>.
func StorageKey(filename string) string {
	d := time.Now().UTC()
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("templates/%d/%02d/%s%s", d.Year(), d.Month(), uuid.New(), ext)
}

// Thumbnail decodes an image and returns a JPEG no larger than 300px on its
// longest side. Smaller images are re-encoded without scaling.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > thumbMaxDim || b.Dy() > thumbMaxDim {
		img = imaging.Fit(img, thumbMaxDim, thumbMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
