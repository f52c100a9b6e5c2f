// pkg/object/s3.go

package object

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

type s3Store struct {
	bucket   string
	endpoint string
	s3       *s3.Client
}

func (s *s3Store) String() string {
	if s.endpoint != "" {
		return fmt.Sprintf("s3://%s@%s/", s.bucket, s.endpoint)
	}
	return fmt.Sprintf("s3://%s/", s.bucket)
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	return errors.As(err, &nf) || errors.As(err, &nsk)
}

func (s *s3Store) Info(ctx context.Context, key string) (FileInfo, error) {
	out, err := s.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return FileInfo{}, errors.Wrapf(ErrNotFound, "%s", key)
		}
		return FileInfo{}, errors.Wrapf(err, "head %s", key)
	}
	return newFileInfo(aws.ToInt64(out.ContentLength)), nil
}

func (s *s3Store) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", offset, offset+int64(chunkSize)-1)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s", key)
		}
		return nil, errors.Wrapf(err, "get %s at %d", key, offset)
	}
	defer out.Body.Close()
	// one extra byte lets the caller notice an oversized payload
	data, err := io.ReadAll(io.LimitReader(out.Body, int64(chunkSize)+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s at %d", key, offset)
	}
	return data, nil
}

// newS3 accepts s3://bucket or http(s)://host[:port]/bucket for S3 compatible
// services, which are addressed path style.
func newS3(bucket, accessKey, secretKey string) (Backend, error) {
	if !strings.Contains(bucket, "://") {
		bucket = "s3://" + bucket
	}
	uri, err := url.Parse(bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", bucket)
	}

	store := &s3Store{}
	if uri.Scheme == "s3" {
		store.bucket = uri.Host
	} else {
		store.endpoint = uri.Scheme + "://" + uri.Host
		store.bucket = strings.Split(strings.Trim(uri.Path, "/"), "/")[0]
	}
	if store.bucket == "" {
		return nil, errors.Errorf("no bucket in %s", bucket)
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	store.s3 = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if store.endpoint != "" {
			o.BaseEndpoint = aws.String(store.endpoint)
			o.UsePathStyle = true
		}
	})
	return store, nil
}

func init() {
	Register("s3", newS3)
}
