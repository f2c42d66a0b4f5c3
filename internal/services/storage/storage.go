package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/pkg/logger"
	s3client "github.com/DGonNine/teacher-management/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Store keeps uploaded objects and returns the location to record for them.
type Store interface {
	Put(ctx context.Context, prefix string, r io.Reader, ext string) (string, error)
}

// New picks S3 when a bucket is configured, local disk otherwise.
func New(ctx context.Context, cfg config.Config) (Store, error) {
	if strings.TrimSpace(cfg.S3.Bucket) == "" {
		if err := os.MkdirAll(cfg.Upload.LocalDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
		logger.WithField("module", config.ModuleUpload).Infof("images stored under %s, served at %s", cfg.Upload.LocalDir, cfg.Upload.PublicPath)
		return NewLocal(cfg.Upload.LocalDir, cfg.Upload.PublicPath), nil
	}
	client, err := s3client.NewClient(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	logger.WithField("module", config.ModuleS3).Infof("images stored in bucket %s", cfg.S3.Bucket)
	return NewS3(client, cfg.S3.Bucket), nil
}

// objectName derives a content-addressed name under prefix.
func objectName(prefix string, sum []byte, ext string) string {
	return fmt.Sprintf("%s/%s%s", prefix, hex.EncodeToString(sum), strings.ToLower(ext))
}

// spool copies r to a temp file while hashing it. The caller removes the file.
func spool(r io.Reader, dir string) (*os.File, []byte, error) {
	tmp, err := os.CreateTemp(dir, "upload-*.tmp")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), r); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, nil, fmt.Errorf("failed to write file: %w", err)
	}
	return tmp, hasher.Sum(nil), nil
}

// Local writes under baseDir and returns URL paths below publicPath.
type Local struct {
	baseDir    string
	publicPath string
}

func NewLocal(baseDir, publicPath string) *Local {
	return &Local{baseDir: baseDir, publicPath: strings.TrimSuffix(publicPath, "/")}
}

func (l *Local) Put(ctx context.Context, prefix string, r io.Reader, ext string) (string, error) {
	dir := filepath.Join(l.baseDir, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	tmp, sum, err := spool(r, dir)
	if err != nil {
		return "", err
	}
	defer func() {
		tmp.Close()
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()

	name := objectName(prefix, sum, ext)
	finalPath := filepath.Join(l.baseDir, filepath.FromSlash(name))
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return l.publicPath + "/" + name, nil
}

// ObjectAPI is the part of *s3.Client used here.
type ObjectAPI interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3 struct {
	client ObjectAPI
	bucket string
}

func NewS3(client ObjectAPI, bucket string) *S3 {
	return &S3{client: client, bucket: bucket}
}

func (s *S3) ensureBucket(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return nil
	}
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if !errors.As(err, &owned) {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Put needs the body twice (hash for the key, then upload), so it spools to a temp file first.
func (s *S3) Put(ctx context.Context, prefix string, r io.Reader, ext string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	tmp, sum, err := spool(r, "")
	if err != nil {
		return "", err
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek: %w", err)
	}

	key := objectName(prefix, sum, ext)
	contentType := mime.TypeByExtension(strings.ToLower(ext))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        tmp,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
