package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-auth-api/internal/domain"
)

// AccountRepo provides typed DynamoDB operations for the accounts table.
// Email is the partition key; callers are expected to normalize it first.
type AccountRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAccountRepo(client *dynamodb.Client, tableName string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName}
}

// Create inserts a new account. The conditional expression makes the table
// itself the arbiter of email uniqueness: of two concurrent registrations for
// the same email, exactly one PutItem succeeds.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("email taken: %w", domain.ErrAlreadyExists)
		}
		return fmt.Errorf("put account: %w", domain.ErrStorage)
	}
	return nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, fmt.Errorf("get account: %w", domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, domain.ErrAccountNotFound
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", domain.ErrStorage)
	}
	return &a, nil
}

func (r *AccountRepo) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return fmt.Errorf("update account: %w", domain.ErrStorage)
	}
	return nil
}

// ListAll scans the whole table. Debug endpoint only.
func (r *AccountRepo) ListAll(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan accounts: %w", domain.ErrStorage)
		}
		var page []domain.Account
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal accounts: %w", domain.ErrStorage)
		}
		accounts = append(accounts, page...)
		if out.LastEvaluatedKey == nil {
			return accounts, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// DeleteAll removes every account and returns the number deleted.
// Debug endpoint only — an operational escape hatch, not part of the
// account lifecycle.
func (r *AccountRepo) DeleteAll(ctx context.Context) (int, error) {
	accounts, err := r.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, a := range accounts {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       strKey("email", a.Email),
		})
		if err != nil {
			return 0, fmt.Errorf("delete account: %w", domain.ErrStorage)
		}
	}
	return len(accounts), nil
}
