// Package dynamodb implements the repositories on top of one DynamoDB
// table handle each.
package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	appErrors "reservation-backend/pkg/errors"
)

// API is the subset of the DynamoDB client the table layer uses
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Item is one stored record in the store's attribute model
type Item = map[string]types.AttributeValue

// Shaper adapts attribute values right before transmission
type Shaper func(Item) Item

// Table wraps the item-level primitives of one DynamoDB table. Every
// operation is a single attempt; failures come back as typed store errors
// with the SDK error attached as the cause.
type Table struct {
	client    API
	tableName string
	logger    *zap.Logger
	shape     Shaper
}

// TableOption configures a Table
type TableOption func(*Table)

// WithShaper installs a value-shaping hook applied to items and expression
// values before they are sent. The default is identity.
func WithShaper(s Shaper) TableOption {
	return func(t *Table) { t.shape = s }
}

// NewTable creates a table handle bound to one table name
func NewTable(client API, tableName string, logger *zap.Logger, opts ...TableOption) *Table {
	t := &Table{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the bound table name
func (t *Table) Name() string {
	return t.tableName
}

func (t *Table) shaped(item Item) Item {
	if t.shape == nil {
		return item
	}
	return t.shape(item)
}

// Put writes a full item
func (t *Table) Put(ctx context.Context, item Item) error {
	_, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.tableName),
		Item:      t.shaped(item),
	})
	if err != nil {
		return appErrors.NewStoreError("put", err)
	}
	return nil
}

// Update applies an update expression unconditionally. DynamoDB upserts on
// a missing key, so unseen keys gain exactly the attributes the expression
// sets.
func (t *Table) Update(ctx context.Context, key Item, expr string, values Item, returnValues types.ReturnValue) (Item, error) {
	out, err := t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.tableName),
		Key:                       key,
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: t.shaped(values),
		ReturnValues:              returnValues,
	})
	if err != nil {
		return nil, appErrors.NewStoreError("update", err)
	}
	return out.Attributes, nil
}

// UpdateConditional applies an update expression guarded by a condition
// expression. A rejection by the store surfaces as a ConditionFailed error
// so callers can branch on it.
func (t *Table) UpdateConditional(ctx context.Context, key Item, updateExpr, conditionExpr string,
	names map[string]string, values Item, returnValues types.ReturnValue) (Item, error) {
	out, err := t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.tableName),
		Key:                       key,
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String(conditionExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: t.shaped(values),
		ReturnValues:              returnValues,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, appErrors.NewConditionFailedError("update", err)
		}
		return nil, appErrors.NewStoreError("update", err)
	}
	return out.Attributes, nil
}

// Delete removes an item by key
func (t *Table) Delete(ctx context.Context, key Item) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.tableName),
		Key:       key,
	})
	if err != nil {
		return appErrors.NewStoreError("delete", err)
	}
	return nil
}

// Get reads an item by key. An absent item is an empty map, not an error.
func (t *Table) Get(ctx context.Context, key Item) (Item, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, appErrors.NewStoreError("get", err)
	}
	if out.Item == nil {
		return Item{}, nil
	}
	return out.Item, nil
}

// Query returns the items matching an equality condition on one key
func (t *Table) Query(ctx context.Context, keyName string, value interface{}) ([]Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(keyName).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, appErrors.NewStoreError("query", err)
	}

	out, err := t.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(t.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, appErrors.NewStoreError("query", err)
	}
	return out.Items, nil
}

// QueryIndex returns the items a secondary index holds for a key expression
func (t *Table) QueryIndex(ctx context.Context, indexName, keyExpr string, values Item) ([]Item, error) {
	out, err := t.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(t.tableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    aws.String(keyExpr),
		ExpressionAttributeValues: t.shaped(values),
	})
	if err != nil {
		return nil, appErrors.NewStoreError("queryIndex", err)
	}
	return out.Items, nil
}

// Scan enumerates the table, optionally filtered by one equality condition.
// Pass an empty filterName for a full scan.
func (t *Table) Scan(ctx context.Context, filterName string, filterValue interface{}) ([]Item, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(t.tableName),
	}

	if filterName != "" {
		expr, err := expression.NewBuilder().
			WithFilter(expression.Name(filterName).Equal(expression.Value(filterValue))).
			Build()
		if err != nil {
			return nil, appErrors.NewStoreError("scan", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	out, err := t.client.Scan(ctx, input)
	if err != nil {
		return nil, appErrors.NewStoreError("scan", err)
	}
	return out.Items, nil
}

// Count returns the number of items in the table
func (t *Table) Count(ctx context.Context) (int, error) {
	out, err := t.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(t.tableName),
		Select:    types.SelectCount,
	})
	if err != nil {
		return 0, appErrors.NewStoreError("count", err)
	}
	return int(out.Count), nil
}
