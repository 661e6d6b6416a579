package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"foodgram/internal/utils"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("image must be a base64 encoded data url")

type (
	// AwsS3 stores recipe images and returns the public reference.
	AwsS3 interface {
		UploadFile(ctx context.Context, key string, body []byte, contentType string) (string, error)
		UploadBase64Image(ctx context.Context, folder string, dataURL string) (string, error)
		DeleteFile(ctx context.Context, key string) error
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Errorf("failed to load aws config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

func (a *awsS3) UploadFile(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return a.GetPublicLinkKey(key), nil
}

func (a *awsS3) GetPublicLinkKey(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}

// GetObjectKeyFromLink reverses GetPublicLinkKey. Links from another bucket
// yield an empty key.
func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := a.GetPublicLinkKey("")
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (a *awsS3) DeleteFile(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (a *awsS3) UploadBase64Image(ctx context.Context, folder string, dataURL string) (string, error) {
	body, contentType, ext, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	key := path.Join(folder, uuid.New().String()+ext)
	return a.UploadFile(ctx, key, body, contentType)
}

// DecodeDataURL decodes "data:image/png;base64,...." payloads. The content
// type is sniffed from the bytes, not trusted from the header.
func DecodeDataURL(dataURL string) ([]byte, string, string, error) {
	payload := dataURL
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx == -1 {
			return nil, "", "", ErrInvalidImage
		}
		payload = payload[idx+len(";base64,"):]
	}

	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(body) == 0 {
		return nil, "", "", ErrInvalidImage
	}

	contentType := http.DetectContentType(body)
	var ext string
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	default:
		return nil, "", "", ErrInvalidImage
	}
	return body, contentType, ext, nil
}
