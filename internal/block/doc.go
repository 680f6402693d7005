// Package block moves a fixed-length byte image between memory and a
// blobstore.BlobStore in a single operation.
package block
