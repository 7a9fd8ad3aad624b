/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/suparena/attrdao/datastore"
	attrerrors "github.com/suparena/attrdao/errors"
)

// DynamoDBAPI is the subset of the DynamoDB client used by this package.
// *dynamodb.Client satisfies it.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
	ExecuteStatement(ctx context.Context, params *sdk.ExecuteStatementInput, optFns ...func(*sdk.Options)) (*sdk.ExecuteStatementOutput, error)
	DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error)
}

// Client implements datastore.Client on top of DynamoDB. Each collection is a table.
type Client struct {
	api    DynamoDBAPI
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient wraps an existing DynamoDB API implementation.
func NewClient(api DynamoDBAPI, opts ...Option) *Client {
	c := &Client{
		api:    api,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect initializes a DynamoDB client using static credentials.
func Connect(ctx context.Context, creds datastore.Credentials, opts ...Option) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, creds.SessionToken),
		),
	}
	if creds.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(creds.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, attrerrors.NewStoreAccessError("Connect", "", fmt.Errorf("failed to load AWS configuration: %w", err))
	}

	api := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if creds.Endpoint != "" {
			o.BaseEndpoint = aws.String(creds.Endpoint)
		}
	})

	c := NewClient(api, opts...)
	c.logger.Debug().
		Str("region", cfg.Region).
		Str("endpoint", creds.Endpoint).
		Msg("dynamodb client initialized")
	return c, nil
}

// Connector returns a datastore.Connector that opens DynamoDB clients.
func Connector(opts ...Option) datastore.Connector {
	return func(ctx context.Context, creds datastore.Credentials) (datastore.Client, error) {
		return Connect(ctx, creds, opts...)
	}
}

// Collection resolves the table called name. The table must have a hash key only;
// its value is the item name.
func (c *Client) Collection(ctx context.Context, name string) (datastore.Collection, error) {
	if name == "" {
		return nil, attrerrors.NewValidationError("domain", "collection name is required")
	}

	out, err := c.api.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		return nil, storeError("DescribeTable", name, err)
	}
	if out.Table == nil {
		return nil, attrerrors.NewStoreAccessError("DescribeTable", name, errors.New("empty table description"))
	}

	hashKey, err := hashKeyOf(out.Table)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("domain", name).
		Str("hashKey", hashKey.name).
		Msg("collection resolved")

	return &Collection{
		api:     c.api,
		name:    name,
		hashKey: hashKey,
		logger:  c.logger,
	}, nil
}

// keyAttribute describes the hash key of a table.
type keyAttribute struct {
	name    string
	numeric bool
}

func hashKeyOf(table *types.TableDescription) (keyAttribute, error) {
	tableName := aws.ToString(table.TableName)

	var key keyAttribute
	for _, elem := range table.KeySchema {
		switch elem.KeyType {
		case types.KeyTypeHash:
			key.name = aws.ToString(elem.AttributeName)
		case types.KeyTypeRange:
			return keyAttribute{}, attrerrors.NewValidationError("domain",
				fmt.Sprintf("table %q has a range key; only hash-keyed tables can back a domain", tableName))
		}
	}
	if key.name == "" {
		return keyAttribute{}, attrerrors.NewValidationError("domain",
			fmt.Sprintf("table %q has no hash key", tableName))
	}

	for _, def := range table.AttributeDefinitions {
		if aws.ToString(def.AttributeName) == key.name {
			key.numeric = def.AttributeType == types.ScalarAttributeTypeN
		}
	}
	return key, nil
}

// retryableCodes are the service error codes of throttling and server faults.
var retryableCodes = map[string]bool{
	"ProvisionedThroughputExceededException": true,
	"RequestLimitExceeded":                   true,
	"ThrottlingException":                    true,
	"InternalServerError":                    true,
	"ServiceUnavailable":                     true,
}

// storeError wraps an SDK failure, keeping the service error code visible.
func storeError(op, domain string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		err = fmt.Errorf("%s: %w", code, err)
		if retryableCodes[code] || apiErr.ErrorFault() == smithy.FaultServer {
			return attrerrors.NewTransientStoreError(op, domain, err)
		}
	}
	return attrerrors.NewStoreAccessError(op, domain, err)
}
