// Package dynamodb provides a BlobStore that keeps each block as a single
// DynamoDB item.
//
// The table needs a string partition key named "name". Block contents are
// stored in the binary attribute "data", so blocks are limited to the
// DynamoDB item size (400 KB).
package dynamodb
