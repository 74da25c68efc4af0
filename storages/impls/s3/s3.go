package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/zeptools/gw-invoice/storages"
)

type Store struct {
	conf     *storages.Conf
	uploader *s3manager.Uploader
}

var _ storages.Store = (*Store)(nil)

// Register makes "s3" available to storages.New
func Register() {
	storages.RegisterFactory("s3", func(conf *storages.Conf) (storages.Store, error) {
		return NewStore(conf)
	})
}

func NewStore(conf *storages.Conf) (*Store, error) {
	if conf.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	cfg := &aws.Config{
		Region:           aws.String(conf.Region),
		S3ForcePathStyle: aws.Bool(conf.PathStyle),
	}
	if conf.Endpoint != "" {
		cfg.Endpoint = aws.String(conf.Endpoint)
	}
	if conf.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(conf.AccessKeyID, conf.SecretAccessKey, "")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("s3: session: %w", err)
	}
	log.Printf("[INFO][s3] uploader ready for bucket %s", conf.Bucket)
	return &Store{conf: conf, uploader: s3manager.NewUploader(sess)}, nil
}

// Put uploads body under the prefixed name and returns the object location
func (s *Store) Put(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	key, err := s.conf.ObjectKey(name)
	if err != nil {
		return "", err
	}
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.conf.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3: upload %s: %w", name, err)
	}
	return out.Location, nil
}
