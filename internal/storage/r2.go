// Package storage uploads site and competition media to an R2-compatible
// object store and hands back public CDN URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"prizedraw-api/internal/config"
)

type MediaStore struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

func NewMediaStore(conf *config.StorageConfig) (*MediaStore, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", conf.AccountID)

	cdnBaseURL := conf.CDNBaseURL
	if cdnBaseURL == "" {
		cdnBaseURL = endpoint
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AccessKeyID, conf.AccessKeySecret, "",
		)),
		awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	return &MediaStore{
		client:     s3.NewFromConfig(cfg),
		bucket:     conf.Bucket,
		cdnBaseURL: cdnBaseURL,
	}, nil
}

// Upload stores a multipart file under key and returns its public URL.
func (m *MediaStore) Upload(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("fileHeader.Open -> %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("m.client.PutObject -> %w", err)
	}

	return fmt.Sprintf("%s/%s", m.cdnBaseURL, key), nil
}
