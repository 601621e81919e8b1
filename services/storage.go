package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"secure_law_firm_go/config"
)

// DocumentKeyPrefix is the object-store path prefix for case documents
const DocumentKeyPrefix = "documents"

// StorageProvider defines the interface for blob storage operations
type StorageProvider interface {
	Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error)
	UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
	IsConfigured() bool
}

// StorageResult contains information about the stored file
type StorageResult struct {
	Key              string // Storage key/path
	FileName         string // Generated safe filename
	FileOriginalName string // Original filename
	FileSize         int64
	MimeType         string
	URL              string // Public URL
}

// NewStorage sets up the storage provider based on configuration,
// falling back to the local filesystem when Spaces is not configured
// or unreachable.
func NewStorage(cfg *config.Config) StorageProvider {
	if cfg.SpaceAccessKey == "" || cfg.SpaceSecretKey == "" || cfg.SpaceName == "" {
		log.Printf("Blob storage established (Local filesystem - path: %s)", cfg.UploadDir)
		return NewLocalStorage(cfg.UploadDir)
	}

	spaces, err := NewSpacesStorage(cfg)
	if err != nil {
		log.Printf("[WARNING] Failed to initialize Spaces storage: %v. Falling back to local storage.", err)
		return NewLocalStorage(cfg.UploadDir)
	}

	// Verify the Space is reachable before committing to it
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := spaces.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &cfg.SpaceName}); err != nil {
		log.Printf("[WARNING] Spaces connection test failed: %v. Falling back to local storage.", err)
		return NewLocalStorage(cfg.UploadDir)
	}

	log.Printf("Blob storage established (DigitalOcean Spaces - space: %s)", cfg.SpaceName)
	return spaces
}

// SpacesStorage implements StorageProvider for DigitalOcean Spaces
type SpacesStorage struct {
	client   *s3.Client
	space    string
	endpoint string
}

// NewSpacesStorage creates a new Spaces storage provider
func NewSpacesStorage(cfg *config.Config) (*SpacesStorage, error) {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.SpaceAccessKey,
		cfg.SpaceSecretKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(cfg.SpaceRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.SpaceEndpoint)
		o.UsePathStyle = true
	})

	return &SpacesStorage{
		client:   client,
		space:    cfg.SpaceName,
		endpoint: strings.TrimSuffix(cfg.SpaceEndpoint, "/"),
	}, nil
}

// IsConfigured returns true if Spaces is properly configured
func (s *SpacesStorage) IsConfigured() bool {
	return s.client != nil && s.space != ""
}

// Upload uploads a file to Spaces
func (s *SpacesStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.UploadReader(ctx, src, key, contentType, file.Size)
	if err != nil {
		return nil, err
	}
	result.FileOriginalName = file.Filename
	return result, nil
}

// UploadReader uploads content from a reader to Spaces. Objects are
// public-read so the returned URL resolves without signing.
func (s *SpacesStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.space),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		ACL:           types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: size,
		MimeType: contentType,
		URL:      s.GetPublicURL(key),
	}, nil
}

// Delete removes a file from Spaces
func (s *SpacesStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.space),
		Key:    aws.String(key),
	}

	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("failed to delete from Spaces: %w", err)
	}

	return nil
}

// GetPublicURL returns the public URL for a file: <endpoint>/<space>/<key>
func (s *SpacesStorage) GetPublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.space, key)
}

// LocalStorage implements StorageProvider for local filesystem
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a new local storage provider
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// IsConfigured returns true (local storage is always available)
func (l *LocalStorage) IsConfigured() bool {
	return true
}

// Upload saves a file to local filesystem
func (l *LocalStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := l.UploadReader(ctx, src, key, contentType, file.Size)
	if err != nil {
		return nil, err
	}
	result.FileOriginalName = file.Filename
	return result, nil
}

// UploadReader saves content from a reader to local filesystem
func (l *LocalStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	fullPath := filepath.Join(l.baseDir, key)

	// Create directory structure
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Create destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// Copy content
	written, err := io.Copy(dst, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: written,
		MimeType: contentType,
		URL:      l.GetPublicURL(key),
	}, nil
}

// Delete removes a file from local filesystem
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(l.baseDir, key)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetPublicURL returns the local file path
func (l *LocalStorage) GetPublicURL(key string) string {
	return "/" + filepath.Join(l.baseDir, key)
}

// GenerateDocumentKey creates a unique storage key under the documents/
// prefix, preserving the original file extension
func GenerateDocumentKey(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	filename := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
	return filepath.Join(DocumentKeyPrefix, filename)
}
