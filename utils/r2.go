// utils/r2.go
package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var r2Client *s3.Client
var r2Bucket string
var cdnBaseURL string

// MaxEvidencePhotoBytes caps verification photo uploads at 10MB.
const MaxEvidencePhotoBytes = 10 * 1024 * 1024

var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func InitR2() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	r2Bucket = os.Getenv("R2_BUCKET_NAME")
	cdnBaseURL = os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load R2 config: %w", err)
	}

	r2Client = s3.NewFromConfig(cfg)
	return nil
}

// UploadEvidencePhoto validates and stores a verification photo, returning
// its public URL. Type/size validation happens here, before the review
// workflow ever sees the submission. Falls back to local uploads/ storage
// when R2 is not configured (dev mode).
func UploadEvidencePhoto(fileHeader *multipart.FileHeader, userID string) (string, error) {
	if fileHeader.Size > MaxEvidencePhotoBytes {
		return "", fmt.Errorf("photo exceeds %d bytes", MaxEvidencePhotoBytes)
	}
	contentType := strings.ToLower(fileHeader.Header.Get("Content-Type"))
	ext, ok := allowedPhotoTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported photo type %q (jpeg, png or webp required)", contentType)
	}

	key := fmt.Sprintf("verifications/%s/%s%s", userID, uuid.NewString(), ext)

	if r2Client == nil {
		destPath := GetUploadPath(filepath.FromSlash(key))
		if err := SaveFile(fileHeader, destPath); err != nil {
			return "", fmt.Errorf("failed to save photo locally: %w", err)
		}
		return "/uploads/" + key, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	_, err = r2Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(r2Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(cdnBaseURL, "/"), key), nil
}
