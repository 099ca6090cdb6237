package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	sc "github.com/dmitrijs2005/musicjournal/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignValidity is the lifetime of the URLs returned by PresignedGetURL.
const PresignValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageService keeps the images attached to journal entries in an
// S3-compatible bucket.
type ImageService struct {
	config *sc.Config
	now    func() time.Time
	newID  func() string
}

func NewImageService(config *sc.Config) *ImageService {
	return &ImageService{
		config: config,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// StorageKey returns a fresh key users/<user>/<yyyy>/<mm>/<dd>/<uuid><ext>
// where ext is the lower-cased extension of name.
func (s *ImageService) StorageKey(userID, name string) string {
	d := s.now().UTC()
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("users/%s/%04d/%02d/%02d/%s%s", userID, d.Year(), d.Month(), d.Day(), s.newID(), ext)
}

// OwnsKey reports whether key lies under the prefix of userID.
func OwnsKey(userID, key string) bool {
	return userID != "" && strings.HasPrefix(key, "users/"+userID+"/") && !strings.Contains(key, "..")
}

func (s *ImageService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Upload stores content under a new key owned by userID and returns the key.
func (s *ImageService) Upload(ctx context.Context, userID, name, contentType string, content []byte) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := s.StorageKey(userID, name)
	bucket := s.config.S3Bucket
	in := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(content),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := putObject(client, ctx, in); err != nil {
		return "", fmt.Errorf("%w: put object %q: %v", common.ErrUpstream, key, err)
	}
	return key, nil
}

// PresignedGetURL returns a GET URL for key valid for PresignValidity.
func (s *ImageService) PresignedGetURL(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
