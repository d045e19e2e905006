package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrObjectNotFound is returned when no dataset exists at the requested path
	ErrObjectNotFound = errors.New("dataset not found in storage")
	// ErrInvalidPath is returned for empty paths or paths leaving the storage root
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage interface for dataset file operations
type Storage interface {
	// Upload stores data under the given storage path and returns the path
	Upload(ctx context.Context, storagePath string, data io.Reader) (string, error)

	// Download retrieves a file by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType `yaml:"type"`
	LocalPath    string      `yaml:"localPath"` // For local storage
	S3Bucket     string      `yaml:"s3Bucket"`  // For S3 storage
	S3Region     string      `yaml:"s3Region"`  // For S3 storage
	AWSAccessKey string      `yaml:"awsAccessKey"`
	AWSSecretKey string      `yaml:"awsSecretKey"`
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		localPath := cfg.LocalPath
		if localPath == "" {
			localPath = "./data"
		}
		return NewLocalStorage(localPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3 bucket is required for S3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// VersionedPath generates a unique storage path for an uploaded dataset
func VersionedPath(fileID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filepath.Base(filename), ext)
	// Sanitize filename
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = strings.ReplaceAll(baseName, "/", "_")
	baseName = strings.ReplaceAll(baseName, "\\", "_")

	return fmt.Sprintf("datasets/%s/%s_%s%s", fileID.String()[:2], fileID.String(), baseName, ext)
}

// cleanPath normalizes a storage path to slash form relative to the storage root
func cleanPath(storagePath string) (string, error) {
	slashed := filepath.ToSlash(storagePath)
	for _, segment := range strings.Split(slashed, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, storagePath)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if cleaned == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, storagePath)
	}
	return cleaned, nil
}

// contentType determines content type from filename
func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
