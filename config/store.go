package config

import (
	"context"
	"fmt"

	"github.com/hupe1980/nvram/blobstore"
	"github.com/hupe1980/nvram/blobstore/dynamodb"
	"github.com/hupe1980/nvram/blobstore/minio"
	"github.com/hupe1980/nvram/blobstore/s3"
	"github.com/hupe1980/nvram/blobstore/sqlite"
)

// OpenStore builds the configured backing store. If the result implements
// io.Closer the caller must close it.
func OpenStore(ctx context.Context, cfg *Config) (blobstore.BlobStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendFile:
		var opts []blobstore.LocalOption
		if cfg.File.Atomic {
			opts = append(opts, blobstore.WithAtomicWrites())
		}
		if cfg.File.Mmap {
			opts = append(opts, blobstore.WithMmap())
		}
		return blobstore.NewLocalStore(cfg.File.Dir, opts...), nil

	case BackendMemory:
		return blobstore.NewMemoryStore(), nil

	case BackendS3:
		var opts []s3.Option
		if cfg.S3.Prefix != "" {
			opts = append(opts, s3.WithPrefix(cfg.S3.Prefix))
		}
		if cfg.S3.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.S3.Region))
		}
		if cfg.S3.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.S3.Endpoint))
		}
		if cfg.S3.DisableChecksum {
			opts = append(opts, s3.WithoutChecksum())
		}
		store, err := s3.New(ctx, cfg.S3.Bucket, opts...)
		if err != nil {
			return nil, fmt.Errorf("open s3 store: %w", err)
		}
		return store, nil

	case BackendMinIO:
		store, err := minio.New(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Region:    cfg.MinIO.Region,
			Secure:    cfg.MinIO.Secure,
		}, cfg.MinIO.Bucket, cfg.MinIO.Prefix)
		if err != nil {
			return nil, fmt.Errorf("open minio store: %w", err)
		}
		if cfg.MinIO.CreateBucket {
			if err := store.EnsureBucket(ctx); err != nil {
				return nil, fmt.Errorf("create minio bucket: %w", err)
			}
		}
		return store, nil

	case BackendDynamoDB:
		var opts []dynamodb.Option
		if cfg.DynamoDB.Prefix != "" {
			opts = append(opts, dynamodb.WithPrefix(cfg.DynamoDB.Prefix))
		}
		if cfg.DynamoDB.Region != "" {
			opts = append(opts, dynamodb.WithRegion(cfg.DynamoDB.Region))
		}
		if cfg.DynamoDB.Endpoint != "" {
			opts = append(opts, dynamodb.WithEndpoint(cfg.DynamoDB.Endpoint))
		}
		store, err := dynamodb.New(ctx, cfg.DynamoDB.Table, opts...)
		if err != nil {
			return nil, fmt.Errorf("open dynamodb store: %w", err)
		}
		return store, nil

	case BackendSQLite:
		return sqlite.Open(cfg.SQLite.Path)
	}

	return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
}
