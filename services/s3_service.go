package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpiry bounds how long an upload/read URL stays valid.
const presignExpiry = 5 * time.Minute

// S3Service hands out presigned URLs for chat images. The upload and the
// subsequent message send are two independent calls; an uploaded file whose
// message never arrived simply stays orphaned.
type S3Service struct {
	Bucket string
	Client *s3.Client
}

// NewS3Service initializes the S3 client for the given region and bucket.
func NewS3Service(region, bucket string) (*S3Service, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Service{Bucket: bucket, Client: s3.NewFromConfig(cfg)}, nil
}

// GenerateChatImageUploadURL returns a presigned PUT URL and the object key
// for a chat image, stored under the match and sender.
func (s *S3Service) GenerateChatImageUploadURL(matchID, senderID, fileName, fileType string) (string, string, error) {
	if s.Client == nil {
		return "", "", errors.New("s3 client not configured")
	}

	key := fmt.Sprintf("chats/%s/%s/%d-%s", matchID, senderID, time.Now().UnixMilli(), fileName)
	presigner := s3.NewPresignClient(s.Client)
	presigned, err := presigner.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateChatImageReadURL returns a presigned GET URL for a stored image.
func (s *S3Service) GenerateChatImageReadURL(key string) (string, error) {
	if s.Client == nil {
		return "", errors.New("s3 client not configured")
	}

	presigner := s3.NewPresignClient(s.Client)
	presigned, err := presigner.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
