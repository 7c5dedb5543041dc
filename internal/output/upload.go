package output

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ObjectUploader is the subset of the S3 transfer manager we use.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Uploader copies archives to S3.
type Uploader struct {
	fs  afero.Fs
	up  ObjectUploader
	log logrus.FieldLogger
}

func NewUploader(fs afero.Fs, up ObjectUploader, log logrus.FieldLogger) *Uploader {
	return &Uploader{fs: fs, up: up, log: log}
}

// NewS3Uploader wraps an S3 client in the transfer manager.
func NewS3Uploader(client manager.UploadAPIClient) *manager.Uploader {
	return manager.NewUploader(client)
}

// Upload stores the file at path in bucket under prefix/<base name> and
// returns the object location.
func (u *Uploader) Upload(ctx context.Context, path, bucket, prefix string) (string, error) {
	f, err := u.fs.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	key := ObjectKey(prefix, filepath.Base(path))
	out, err := u.up.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s to s3://%s/%s", path, bucket, key)
	}
	u.log.Infof("Uploaded %s to %s", filepath.Base(path), out.Location)
	return out.Location, nil
}

// ObjectKey joins prefix and name with a single slash.
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
