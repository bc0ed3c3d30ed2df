// Package source localizes ingestion inputs. Local paths pass through
// unchanged; s3:// URLs are fetched into a local directory first, so the
// ingestors only ever deal with filesystem paths.
package source

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when the local filesystem path or remote s3
// location does not exist.
var ErrNotFound = errors.New("file or url does not exist")

// IsURL reports whether name refers to a remote s3 location.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "s3://")
}

// Localize returns a local filesystem path for name. A local path is
// returned as-is after an existence check. An s3://bucket/key URL is
// downloaded into dir and the path of the downloaded file is returned.
// The s3client parameter is required only for s3 URLs.
func Localize(name string, s3client s3iface.S3API, dir string) (string, error) {
	if !IsURL(name) {
		if _, err := os.Stat(name); err != nil {
			if os.IsNotExist(err) {
				return "", ErrNotFound
			}
			return "", errors.Wrapf(err, "checking %s", name)
		}
		return name, nil
	}

	if s3client == nil {
		return "", errors.New("missing s3 client")
	}

	u, err := url.Parse(name)
	if err != nil {
		return "", errors.Wrapf(err, "parsing S3 URL %v", name)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	result, err := s3client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey:
				return "", ErrNotFound
			}
		}
		return "", errors.Wrapf(err, "fetching S3 object %v", name)
	}
	defer result.Body.Close()

	local := filepath.Join(dir, path.Base(key))
	f, err := os.Create(local)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", local)
	}
	defer f.Close()

	if _, err := f.ReadFrom(result.Body); err != nil {
		return "", errors.Wrapf(err, "writing %s", local)
	}

	return local, nil
}
