package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/campus-watch/api-go/config"
)

// ImageStore uploads incident evidence photos to Cloudflare R2 and hands
// back the opaque public URL the report row stores.
type ImageStore struct {
	Client *s3.Client
	Config *config.R2Config
}

func NewImageStore() *ImageStore {
	r2Config := config.GetR2Config()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &ImageStore{Client: client, Config: r2Config}
}

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// MaxImageSize caps evidence photos at 10MB.
const MaxImageSize int64 = 10 * 1024 * 1024

func IsValidImageType(contentType string) bool {
	return validImageTypes[contentType]
}

// UploadReportImage stores the photo under a uuid-derived key and returns
// its public URL.
func (is *ImageStore) UploadReportImage(ctx context.Context, userID uint, fileName, contentType string, body io.Reader) (string, error) {
	key := is.generateImageKey(userID, fileName)

	_, err := is.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(is.Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", is.Config.PublicURL, key), nil
}

func (is *ImageStore) generateImageKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("uploads/incidents/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}
