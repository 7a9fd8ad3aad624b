/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	attrerrors "github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/storagemodels"
)

// CountItemName and CountAttribute name the single item returned for a count query.
const (
	CountItemName  = "Domain"
	CountAttribute = "Count"
)

// Collection implements datastore.Collection for one DynamoDB table.
type Collection struct {
	api     DynamoDBAPI
	name    string
	hashKey keyAttribute
	logger  zerolog.Logger
}

// Name returns the table name.
func (c *Collection) Name() string {
	return c.name
}

// GetItem retrieves a single item by its hash key value.
func (c *Collection) GetItem(ctx context.Context, key string) (storagemodels.Item, error) {
	keyMap, err := keyFor(c.hashKey, key)
	if err != nil {
		return storagemodels.Item{}, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := c.api.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(c.name),
		Key:            keyMap,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return storagemodels.Item{}, storeError("GetItem", c.name, err)
	}
	if len(out.Item) == 0 {
		return storagemodels.Item{}, attrerrors.NewNotFoundError(c.name, key)
	}

	item := toItem(out.Item, c.hashKey.name)
	item.Name = key
	return item, nil
}

// ListItemsWithAttributes performs a single Scan call of at most params.MaxCount items.
func (c *Collection) ListItemsWithAttributes(ctx context.Context, params *storagemodels.ListParams) (*storagemodels.ItemPage, error) {
	if params == nil {
		params = &storagemodels.ListParams{}
	}

	startKey, err := decodeToken(params.NextToken)
	if err != nil {
		return nil, attrerrors.NewStoreAccessError("ListItemsWithAttributes", c.name, err)
	}

	input := &sdk.ScanInput{
		TableName:         aws.String(c.name),
		ExclusiveStartKey: startKey,
	}
	if params.MaxCount > 0 {
		input.Limit = aws.Int32(params.MaxCount)
	}
	if params.Filter != "" {
		input.FilterExpression = aws.String(params.Filter)
	}

	out, err := c.api.Scan(ctx, input)
	if err != nil {
		return nil, storeError("ListItemsWithAttributes", c.name, err)
	}

	page := &storagemodels.ItemPage{
		Items: make([]storagemodels.Item, 0, len(out.Items)),
	}
	for _, raw := range out.Items {
		page.Items = append(page.Items, toItem(raw, c.hashKey.name))
	}
	if params.SortAttribute != "" {
		sortItems(page.Items, params.SortAttribute, params.Descending)
	}

	page.NextToken, err = encodeToken(out.LastEvaluatedKey)
	if err != nil {
		return nil, attrerrors.NewStoreAccessError("ListItemsWithAttributes", c.name, err)
	}

	c.logger.Debug().
		Str("domain", c.name).
		Int("items", len(page.Items)).
		Bool("more", page.NextToken != "").
		Msg("scan page fetched")
	return page, nil
}

// SelectItems runs a select statement. Count queries are answered with a
// counting scan; everything else is executed as PartiQL.
func (c *Collection) SelectItems(ctx context.Context, params *storagemodels.SelectParams) (*storagemodels.ItemPage, error) {
	if params == nil || params.Expression == "" {
		return nil, attrerrors.NewValidationError("expression", "select expression is required")
	}

	if stmt, ok := parseCount(params.Expression); ok {
		return c.count(ctx, stmt)
	}

	input := &sdk.ExecuteStatementInput{
		Statement: aws.String(params.Expression),
	}
	if params.NextToken != "" {
		input.NextToken = aws.String(params.NextToken)
	}

	out, err := c.api.ExecuteStatement(ctx, input)
	if err != nil {
		return nil, storeError("SelectItems", c.name, err)
	}

	page := &storagemodels.ItemPage{
		Items:     make([]storagemodels.Item, 0, len(out.Items)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, raw := range out.Items {
		page.Items = append(page.Items, toItem(raw, c.hashKey.name))
	}
	return page, nil
}

// count answers a count statement. Without a predicate it sums a COUNT scan;
// with one it pages through a PartiQL select of the key attribute, so the
// predicate may use PartiQL literals such as status = 'active'.
func (c *Collection) count(ctx context.Context, stmt countStatement) (*storagemodels.ItemPage, error) {
	var (
		total int64
		err   error
	)
	if stmt.predicate == "" {
		total, err = c.scanCount(ctx, stmt.table)
	} else {
		total, err = c.selectCount(ctx, stmt)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("domain", stmt.table).
		Str("predicate", stmt.predicate).
		Int64("count", total).
		Msg("count finished")

	return &storagemodels.ItemPage{
		Items: []storagemodels.Item{{
			Name: CountItemName,
			Attributes: storagemodels.Attributes{
				{Name: CountAttribute, Value: strconv.FormatInt(total, 10)},
			},
		}},
	}, nil
}

func (c *Collection) scanCount(ctx context.Context, table string) (int64, error) {
	var total int64
	paginator := sdk.NewScanPaginator(c.api, &sdk.ScanInput{
		TableName: aws.String(table),
		Select:    types.SelectCount,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, storeError("SelectItems", table, err)
		}
		total += int64(out.Count)
	}
	return total, nil
}

func (c *Collection) selectCount(ctx context.Context, stmt countStatement) (int64, error) {
	projection := "*"
	if stmt.table == c.name {
		projection = quoteIdentifier(c.hashKey.name)
	}
	input := &sdk.ExecuteStatementInput{
		Statement: aws.String(fmt.Sprintf("SELECT %s FROM %s WHERE %s",
			projection, quoteIdentifier(stmt.table), stmt.predicate)),
	}

	var total int64
	for {
		out, err := c.api.ExecuteStatement(ctx, input)
		if err != nil {
			return 0, storeError("SelectItems", stmt.table, err)
		}
		total += int64(len(out.Items))

		next := aws.ToString(out.NextToken)
		if next == "" {
			return total, nil
		}
		input.NextToken = aws.String(next)
	}
}
