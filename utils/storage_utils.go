package utils

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"hanapBack/internal/config"
)

// S3Uploader pushes images to an S3-compatible object store and hands back the
// public URL the mobile clients render.
type S3Uploader struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

func NewS3Uploader(cfg config.Config) (*S3Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Storage.Region),
		Endpoint: aws.String(cfg.Storage.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			cfg.Storage.AccessKey, cfg.Storage.SecretKey, "",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create storage session: %w", err)
	}

	return &S3Uploader{
		client:    s3.New(sess),
		bucket:    cfg.Storage.Bucket,
		publicURL: cfg.Storage.PublicURL,
	}, nil
}

// Upload stores the file under folder/fileName and returns its public URL.
func (u *S3Uploader) Upload(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to storage: %v", err)
	}

	return fmt.Sprintf("%s/%s", u.publicURL, filePath), nil
}
