package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/goldenhair/storefront/internal/aws"
)

// DedupRecord pins a verified (gateway order id, payment id) pair to the
// order row it produced. Its conditional put inside the verified-order
// transaction is what makes verification idempotent.
type DedupRecord struct {
	DedupKey  string    `dynamodbav:"dedup_key"` // PK
	OrderID   string    `dynamodbav:"order_id"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	ExpiresAt int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}

// DedupKey derives the dedup table key for a callback pair.
func DedupKey(gatewayOrderID, paymentID string) string {
	return gatewayOrderID + "#" + paymentID
}

// DedupStore reads dedup records; writes happen through the orders store's
// transact-write so record and order land atomically.
type DedupStore struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewDedupStore returns a configured store. ttlWindow bounds how long a
// replayed verification can still resolve to the original order.
func NewDedupStore(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *DedupStore {
	return &DedupStore{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// NewRecord builds the record for a freshly verified payment.
func (s *DedupStore) NewRecord(gatewayOrderID, paymentID, orderID string) DedupRecord {
	now := s.nowFunc()
	return DedupRecord{
		DedupKey:  DedupKey(gatewayOrderID, paymentID),
		OrderID:   orderID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttlWindow).Unix(),
	}
}

// Get retrieves a dedup record by callback pair. If not found, returns
// (nil, nil).
func (s *DedupStore) Get(ctx context.Context, gatewayOrderID, paymentID string) (*DedupRecord, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"dedup_key": &types.AttributeValueMemberS{Value: DedupKey(gatewayOrderID, paymentID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec DedupRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &rec, nil
}

// TableName exposes the bound table for the orders store's transact-write.
func (s *DedupStore) TableName() string { return s.tableName }
