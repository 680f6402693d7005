package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/nvram/blobstore"
)

const (
	attrName = "name"
	attrData = "data"
)

// MaxItemSize is the DynamoDB item size limit. Blocks larger than this
// (minus attribute overhead) are rejected by Put.
const MaxItemSize = 400 * 1024

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.ScanAPIClient
}

var _ DDBClient = (*dynamodb.Client)(nil)

// Store implements blobstore.BlobStore on a DynamoDB table.
// Each blob is a single item keyed by "name" with its contents in "data".
type Store struct {
	client DDBClient
	table  string
	prefix string
}

// Option configures New.
type Option func(*options)

type options struct {
	region   string
	endpoint string
	prefix   string
}

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint overrides the service endpoint (e.g. DynamoDB Local).
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithPrefix prepends prefix to every item name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// New creates a Store using the default AWS credential chain.
func New(ctx context.Context, table string, opts ...Option) (*Store, error) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(do *dynamodb.Options) {
		if o.endpoint != "" {
			do.BaseEndpoint = aws.String(o.endpoint)
		}
	})
	return NewStore(client, table, o.prefix), nil
}

// NewStore creates a Store over an existing client.
func NewStore(client DDBClient, table, prefix string) *Store {
	return &Store{client: client, table: table, prefix: prefix}
}

func (s *Store) key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrName: &types.AttributeValueMemberS{Value: s.prefix + name},
	}
}

// Open fetches the item with a strongly consistent read.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, blobstore.ErrNotFound
	}
	data, ok := out.Item[attrData].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("dynamodb: item %q has no binary %q attribute", name, attrData)
	}
	return blobstore.NewBytesBlob(data.Value), nil
}

// Create returns a blob that is written as one item on Close.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	return blobstore.NewBufferedBlob(ctx, func(ctx context.Context, data []byte) error {
		return s.Put(ctx, name, data)
	}), nil
}

// Put replaces the item. A single PutItem is atomic.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if len(data) > MaxItemSize {
		return fmt.Errorf("dynamodb: blob %q is %d bytes, exceeds item limit", name, len(data))
	}
	item := s.key(name)
	item[attrData] = &types.AttributeValueMemberB{Value: data}
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return err
}

// Delete removes the item. Missing items are not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(name),
	})
	return err
}

// List scans the table for names starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                aws.String(s.table),
		ProjectionExpression:     aws.String("#n"),
		FilterExpression:         aws.String("begins_with(#n, :p)"),
		ExpressionAttributeNames: map[string]string{"#n": attrName},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: s.prefix + prefix},
		},
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			v, ok := item[attrName].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			names = append(names, strings.TrimPrefix(v.Value, s.prefix))
		}
	}
	sort.Strings(names)
	return names, nil
}
