// Package gcs archives generated documents in a Google Cloud Storage bucket.
package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const writeTimeout = 2 * time.Minute

type objectWriter interface {
	io.Writer
	Close() error
}

// Archive stores immutable objects: a key is written at most once.
type Archive struct {
	bucket string
	open   func(ctx context.Context, key string) objectWriter
}

// NewArchive creates an Archive writing to bucket through client.
func NewArchive(client *storage.Client, bucket string) *Archive {
	handle := client.Bucket(bucket)
	return &Archive{
		bucket: bucket,
		open: func(ctx context.Context, key string) objectWriter {
			w := handle.Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
			w.ContentType = "application/pdf"
			return w
		},
	}
}

// Put writes data under key. It returns domain.ErrAlreadyExists when the
// object is already present.
func (a *Archive) Put(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	w := a.open(ctx, key)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return a.mapErr(key, err)
	}
	if err := w.Close(); err != nil {
		return a.mapErr(key, err)
	}
	return nil
}

func (a *Archive) mapErr(key string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
		return fmt.Errorf("gs://%s/%s: %w", a.bucket, key, domain.ErrAlreadyExists)
	}
	return fmt.Errorf("write gs://%s/%s: %w", a.bucket, key, err)
}
