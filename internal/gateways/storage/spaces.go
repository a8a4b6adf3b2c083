package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/sellfast/marketplace/internal/config"
)

// SpacesStore keeps listing images in an S3 compatible bucket
// (DigitalOcean Spaces unless an endpoint is configured).
type SpacesStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
	root     string
}

func NewSpacesStore(ctx context.Context, cfg appconfig.SpacesConfig) (*SpacesStore, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &SpacesStore{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		root:     strings.Trim(cfg.ListingRoot, "/"),
	}, nil
}

// Put uploads body under root/key with public read access and returns its URL.
func (s *SpacesStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	path := s.objectPath(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return s.URL(key), nil
}

// URL is the public address of key, virtual-hosted style.
func (s *SpacesStore) URL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, host, s.objectPath(key))
}

func (s *SpacesStore) objectPath(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.root == "" {
		return key
	}
	return s.root + "/" + key
}
