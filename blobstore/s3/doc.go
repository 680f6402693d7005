// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("nvram/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	m, err := nvram.New(store, "nvram.blk", defaults)
//
// # Features
//
//   - Ranged GETs for reads
//   - Uploads through the SDK upload manager with CRC32C integrity checks
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
