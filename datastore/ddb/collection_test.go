/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	attrerrors "github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/storagemodels"
)

func newTestCollection(t *testing.T, api *mockAPI) *Collection {
	t.Helper()

	api.On("DescribeTable", mock.Anything, &sdk.DescribeTableInput{TableName: aws.String("Users")}).
		Return(hashTable("Users"), nil).Once()

	coll, err := NewClient(api).Collection(context.Background(), "Users")
	require.NoError(t, err)
	require.Equal(t, "Users", coll.Name())
	return coll.(*Collection)
}

func TestCollection_ResolvesHashKey(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	assert.Equal(t, "id", coll.hashKey.name)
	assert.False(t, coll.hashKey.numeric)
	api.AssertExpectations(t)
}

func TestCollection_RejectsRangeKey(t *testing.T) {
	api := &mockAPI{}
	out := hashTable("Orders")
	out.Table.KeySchema = append(out.Table.KeySchema,
		types.KeySchemaElement{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange})
	api.On("DescribeTable", mock.Anything, mock.Anything).Return(out, nil)

	_, err := NewClient(api).Collection(context.Background(), "Orders")

	require.Error(t, err)
	assert.True(t, attrerrors.IsValidationError(err))
}

func TestCollection_MissingTable(t *testing.T) {
	api := &mockAPI{}
	apiErr := &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "table not found"}
	api.On("DescribeTable", mock.Anything, mock.Anything).Return(nil, apiErr)

	_, err := NewClient(api).Collection(context.Background(), "Missing")

	require.Error(t, err)
	assert.True(t, attrerrors.IsStoreAccess(err))
	assert.Contains(t, err.Error(), "ResourceNotFoundException")
	assert.True(t, errors.Is(err, apiErr))
}

func TestCollection_EmptyName(t *testing.T) {
	_, err := NewClient(&mockAPI{}).Collection(context.Background(), "")
	assert.True(t, attrerrors.IsValidationError(err))
}

func TestGetItem_Found(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	api.On("GetItem", mock.Anything, &sdk.GetItemInput{
		TableName:      aws.String("Users"),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "u1"}},
		ConsistentRead: aws.Bool(true),
	}).Return(&sdk.GetItemOutput{Item: strItem("u1", map[string]string{"name": "Ada"})}, nil)

	item, err := coll.GetItem(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "u1", item.Name)
	name, ok := item.Attributes.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Ada", name)
	api.AssertExpectations(t)
}

func TestGetItem_NotFound(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)
	api.On("GetItem", mock.Anything, mock.Anything).Return(&sdk.GetItemOutput{}, nil)

	_, err := coll.GetItem(context.Background(), "nobody")

	require.Error(t, err)
	assert.True(t, attrerrors.IsNotFound(err))
}

func TestGetItem_StoreError(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)
	api.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := coll.GetItem(context.Background(), "u1")

	assert.True(t, attrerrors.IsStoreAccess(err))
	assert.False(t, attrerrors.IsNotFound(err))
}

func TestListItemsWithAttributes_TokenRoundTrip(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)
	lastKey := map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "u2"}}

	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *sdk.ScanInput) bool {
		return in.ExclusiveStartKey == nil && aws.ToInt32(in.Limit) == 2
	})).Return(&sdk.ScanOutput{
		Items:            []map[string]types.AttributeValue{strItem("u1", nil), strItem("u2", nil)},
		LastEvaluatedKey: lastKey,
	}, nil).Once()

	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *sdk.ScanInput) bool {
		return assert.ObjectsAreEqual(lastKey, in.ExclusiveStartKey)
	})).Return(&sdk.ScanOutput{
		Items: []map[string]types.AttributeValue{strItem("u3", nil)},
	}, nil).Once()

	first, err := coll.ListItemsWithAttributes(context.Background(), &storagemodels.ListParams{MaxCount: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextToken)

	second, err := coll.ListItemsWithAttributes(context.Background(), &storagemodels.ListParams{
		MaxCount:  2,
		NextToken: first.NextToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "u3", second.Items[0].Name)
	assert.Empty(t, second.NextToken)
	api.AssertExpectations(t)
}

func TestListItemsWithAttributes_FilterAndSort(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *sdk.ScanInput) bool {
		return aws.ToString(in.FilterExpression) == "attribute_exists(email)"
	})).Return(&sdk.ScanOutput{
		Items: []map[string]types.AttributeValue{
			strItem("u1", map[string]string{"name": "Carol"}),
			strItem("u2", map[string]string{"name": "Alice"}),
			strItem("u3", map[string]string{"name": "Bob"}),
		},
	}, nil)

	page, err := coll.ListItemsWithAttributes(context.Background(), &storagemodels.ListParams{
		Filter:        "attribute_exists(email)",
		SortAttribute: "name",
	})

	require.NoError(t, err)
	names := []string{page.Items[0].Name, page.Items[1].Name, page.Items[2].Name}
	assert.Equal(t, []string{"u2", "u3", "u1"}, names)
}

func TestListItemsWithAttributes_InvalidToken(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	_, err := coll.ListItemsWithAttributes(context.Background(), &storagemodels.ListParams{NextToken: "%%%"})

	require.Error(t, err)
	assert.True(t, attrerrors.IsStoreAccess(err))
	api.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
}

func TestSelectItems_CountSumsPages(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)
	lastKey := map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "u3"}}

	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *sdk.ScanInput) bool {
		return in.Select == types.SelectCount && in.ExclusiveStartKey == nil && in.FilterExpression == nil
	})).Return(&sdk.ScanOutput{Count: 3, LastEvaluatedKey: lastKey}, nil).Once()
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *sdk.ScanInput) bool {
		return in.Select == types.SelectCount && in.ExclusiveStartKey != nil
	})).Return(&sdk.ScanOutput{Count: 4}, nil).Once()

	page, err := coll.SelectItems(context.Background(), &storagemodels.SelectParams{
		Expression: "select count(*) from Users",
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, CountItemName, page.Items[0].Name)
	count, _ := page.Items[0].Attributes.Get(CountAttribute)
	assert.Equal(t, "7", count)
	api.AssertExpectations(t)
}

func TestSelectItems_CountWithPredicate(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)
	statement := `SELECT "id" FROM "Users" WHERE status = 'active'`

	api.On("ExecuteStatement", mock.Anything, mock.MatchedBy(func(in *sdk.ExecuteStatementInput) bool {
		return aws.ToString(in.Statement) == statement && in.NextToken == nil
	})).Return(&sdk.ExecuteStatementOutput{
		Items: []map[string]types.AttributeValue{
			strItem("u1", nil), strItem("u2", nil),
		},
		NextToken: aws.String("page-2"),
	}, nil).Once()
	api.On("ExecuteStatement", mock.Anything, mock.MatchedBy(func(in *sdk.ExecuteStatementInput) bool {
		return aws.ToString(in.Statement) == statement && aws.ToString(in.NextToken) == "page-2"
	})).Return(&sdk.ExecuteStatementOutput{
		Items: []map[string]types.AttributeValue{strItem("u7", nil)},
	}, nil).Once()

	page, err := coll.SelectItems(context.Background(), &storagemodels.SelectParams{
		Expression: "select count(*) from Users where status = 'active'",
	})

	require.NoError(t, err)
	count, _ := page.Items[0].Attributes.Get(CountAttribute)
	assert.Equal(t, "3", count)
	api.AssertExpectations(t)
	api.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
}

func TestSelectItems_CountOtherTableProjectsAll(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	api.On("ExecuteStatement", mock.Anything, mock.MatchedBy(func(in *sdk.ExecuteStatementInput) bool {
		return aws.ToString(in.Statement) == `SELECT * FROM "my-orders" WHERE total > 10`
	})).Return(&sdk.ExecuteStatementOutput{}, nil).Once()

	page, err := coll.SelectItems(context.Background(), &storagemodels.SelectParams{
		Expression: "select count(*) from `my-orders` where total > 10",
	})

	require.NoError(t, err)
	count, _ := page.Items[0].Attributes.Get(CountAttribute)
	assert.Equal(t, "0", count)
}

func TestSelectItems_CountStoreError(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)
	api.On("Scan", mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "AccessDeniedException"}).Once()

	_, err := coll.SelectItems(context.Background(), &storagemodels.SelectParams{
		Expression: "select count(*) from Users",
	})
	assert.True(t, attrerrors.IsStoreAccess(err))
}

func TestSelectItems_PartiQLPassThrough(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	api.On("ExecuteStatement", mock.Anything, &sdk.ExecuteStatementInput{
		Statement: aws.String(`SELECT * FROM "Users" WHERE name = 'Ada'`),
		NextToken: aws.String("opaque-1"),
	}).Return(&sdk.ExecuteStatementOutput{
		Items:     []map[string]types.AttributeValue{strItem("u1", map[string]string{"name": "Ada"})},
		NextToken: aws.String("opaque-2"),
	}, nil)

	page, err := coll.SelectItems(context.Background(), &storagemodels.SelectParams{
		Expression: `SELECT * FROM "Users" WHERE name = 'Ada'`,
		NextToken:  "opaque-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "opaque-2", page.NextToken)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u1", page.Items[0].Name)
}

func TestSelectItems_EmptyExpression(t *testing.T) {
	api := &mockAPI{}
	coll := newTestCollection(t, api)

	_, err := coll.SelectItems(context.Background(), &storagemodels.SelectParams{})
	assert.True(t, attrerrors.IsValidationError(err))
}

func TestStoreError_MarksThrottlingRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"throttled", &smithy.GenericAPIError{Code: "ProvisionedThroughputExceededException"}, true},
		{"server fault", &smithy.GenericAPIError{Code: "Boom", Fault: smithy.FaultServer}, true},
		{"client fault", &smithy.GenericAPIError{Code: "ValidationException", Fault: smithy.FaultClient}, false},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError("Scan", "Users", tt.err)
			assert.True(t, attrerrors.IsStoreAccess(err))
			assert.Equal(t, tt.retryable, attrerrors.IsRetryable(err))
		})
	}
}
