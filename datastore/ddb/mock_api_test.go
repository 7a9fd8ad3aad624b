/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/mock"
)

// mockAPI is a testify mock of the DynamoDB calls used by Collection.
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetItem(ctx context.Context, params *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sdk.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) Scan(ctx context.Context, params *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sdk.ScanOutput)
	return out, args.Error(1)
}

func (m *mockAPI) ExecuteStatement(ctx context.Context, params *sdk.ExecuteStatementInput, _ ...func(*sdk.Options)) (*sdk.ExecuteStatementOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sdk.ExecuteStatementOutput)
	return out, args.Error(1)
}

func (m *mockAPI) DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, _ ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sdk.DescribeTableOutput)
	return out, args.Error(1)
}

// hashTable describes a table keyed by a single string attribute "id".
func hashTable(name string) *sdk.DescribeTableOutput {
	return &sdk.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName: aws.String(name),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
		},
	}
}

func strItem(id string, attrs map[string]string) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
	for k, v := range attrs {
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	return item
}
