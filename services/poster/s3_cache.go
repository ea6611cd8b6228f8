package poster

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"
)

// Cache stores resized posters by key. Load returns nil, nil on a miss.
type Cache interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, data []byte) error
}

// S3Cache keeps resized posters in a single bucket.
type S3Cache struct {
	cl     *cs.S3Client
	bucket string
}

// NewS3Cache returns nil when there is no client or bucket configured.
func NewS3Cache(cl *cs.S3Client, bucket string) *S3Cache {
	if cl == nil || bucket == "" {
		return nil
	}
	return &S3Cache{cl: cl, bucket: bucket}
}

func (s *S3Cache) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.cl.Get().GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	var awsErr awserr.Error
	if errors.As(err, &awsErr) && awsErr.Code() == s3.ErrCodeNoSuchKey {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to load poster %v", key)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(out.Body)
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read poster %v", key)
	}
	return data, nil
}

func (s *S3Cache) Store(ctx context.Context, key string, data []byte) error {
	sum := md5.Sum(data)
	_, err := s.cl.Get().PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentMD5:  aws.String(base64.StdEncoding.EncodeToString(sum[:])),
		ContentType: aws.String("image/jpeg"),
	})
	return errors.Wrapf(err, "failed to store poster %v", key)
}

var _ Cache = (*S3Cache)(nil)
