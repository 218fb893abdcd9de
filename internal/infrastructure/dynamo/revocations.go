package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-auth-api/internal/domain"
)

// RevocationRepo is the durable revocation ledger: a set of revoked jti
// values keyed by jti. Insert is idempotent (PutItem on the same key is an
// overwrite), and each entry carries the revoked token's own expiry as a
// DynamoDB TTL attribute so the table does not grow unboundedly.
type RevocationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRevocationRepo(client *dynamodb.Client, tableName string) *RevocationRepo {
	return &RevocationRepo{client: client, tableName: tableName}
}

type revokedToken struct {
	JTI       string    `dynamodbav:"jti"`
	ExpiresAt int64     `dynamodbav:"expires_at"` // TTL attribute, epoch seconds
	RevokedAt time.Time `dynamodbav:"revoked_at"`
}

func (r *RevocationRepo) Contains(ctx context.Context, jti string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("jti", jti),
	})
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", domain.ErrStorage)
	}
	return out.Item != nil, nil
}

func (r *RevocationRepo) Insert(ctx context.Context, jti string, expiresAt time.Time) error {
	item, err := attributevalue.MarshalMap(revokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt.Unix(),
		RevokedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal revocation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("insert revocation: %w", domain.ErrStorage)
	}
	return nil
}
