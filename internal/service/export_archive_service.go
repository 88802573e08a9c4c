package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ArchiveProvider 导出归档的存储后端
type ArchiveProvider interface {
	Put(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// LocalArchiveProvider 本地目录归档
type LocalArchiveProvider struct {
	Path string
}

func (p *LocalArchiveProvider) Put(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	dst := filepath.Join(p.Path, filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", err
	}
	return dst, nil
}

// MinioArchiveProvider MinIO归档
type MinioArchiveProvider struct {
	Config *config.ExportsConfig
	Client *minio.Client
}

func NewMinioArchiveProvider(cfg *config.ExportsConfig) (*MinioArchiveProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchiveProvider{Config: cfg, Client: client}, nil
}

func (p *MinioArchiveProvider) Put(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return "/" + p.Config.MinioBucket + "/" + filename, nil
}

// OSSArchiveProvider 阿里云OSS归档
type OSSArchiveProvider struct {
	Config *config.ExportsConfig
	Client *oss.Client
}

func NewOSSArchiveProvider(cfg *config.ExportsConfig) (*OSSArchiveProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSArchiveProvider{Config: cfg, Client: client}, nil
}

func (p *OSSArchiveProvider) Put(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(filename, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename), nil
}

// ExportArchiveService 把每份生成的CSV导出留档一份。
// 归档失败只记日志，不影响下载本身。
type ExportArchiveService struct {
	Enabled  bool
	Provider ArchiveProvider
}

func NewExportArchiveService(cfg *config.Config) *ExportArchiveService {
	if !cfg.Exports.Archive {
		return &ExportArchiveService{Enabled: false}
	}

	var provider ArchiveProvider
	switch cfg.Exports.Type {
	case "minio":
		p, err := NewMinioArchiveProvider(&cfg.Exports)
		if err == nil {
			provider = p
		}
	case "oss":
		p, err := NewOSSArchiveProvider(&cfg.Exports)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalArchiveProvider{Path: cfg.Exports.LocalPath}
	}

	return &ExportArchiveService{Enabled: true, Provider: provider}
}

// Archive 按日期目录留档一份导出文件
func (s *ExportArchiveService) Archive(ctx context.Context, file *ExportFile) error {
	if !s.Enabled {
		return nil
	}
	name := fmt.Sprintf("%s/%s", time.Now().Format("2006-01-02"), file.Filename)
	location, err := s.Provider.Put(ctx, name, file.Content, "text/csv")
	if err != nil {
		return err
	}
	logger.Log.Info("Export archived", zap.String("location", location))
	return nil
}
