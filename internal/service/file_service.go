package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/family-photo-service/internal/config"
)

// FileService is the object-storage collaborator boundary. The real presigned
// URL machinery lives outside this repository; handlers only need keys and
// the URLs clients should use.
type FileService interface {
	NewKey(prefix string) string
	UploadURL(key string) string
	DownloadURL(key string) string
}

type storageURLService struct {
	cfg config.StorageConfig
}

// NewFileService builds a URL issuer over the configured storage endpoints.
func NewFileService(cfg config.StorageConfig) FileService {
	return &storageURLService{cfg: cfg}
}

func (s *storageURLService) NewKey(prefix string) string {
	return fmt.Sprintf("%s/%s", prefix, uuid.NewString())
}

func (s *storageURLService) UploadURL(key string) string {
	return fmt.Sprintf("%s/%s", s.cfg.UploadBaseURL, key)
}

func (s *storageURLService) DownloadURL(key string) string {
	return fmt.Sprintf("%s/%s", s.cfg.DownloadBaseURL, key)
}
