// Package blobstore provides the backing stores for persisted blocks.
//
// BlobStore is the interface for reading and writing named blobs. A blob
// holds exactly one persisted region's worth of bytes.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem, optional mmap reads and atomic (rename) writes
//   - MemoryStore: In-memory, for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
//   - dynamodb.Store: One DynamoDB item per blob
//   - sqlite.Store: One SQLite row per blob
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Create(ctx, name) (WritableBlob, error)  // Create or truncate for writing
//	    Put(ctx, name, data) error               // One-shot write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Missing blobs must be reported with an error satisfying
// errors.Is(err, ErrNotFound). Backends that only support whole-object uploads
// can build Create on top of BufferedBlob.
package blobstore
