package comp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// CompRow represents the stored competition data structure.
type CompRow struct {
	ID         string    `dynamo:"comp_id,hash"` // Primary key
	Name       string    `dynamo:"name"`
	StartTime  time.Time `dynamo:"start_time"`
	EndTime    time.Time `dynamo:"end_time"`
	ProblemIDs []string  `dynamo:"problem_ids"`
	Version    int       `dynamo:"version"` // For optimistic locking
}

// DynamoDbCompTable represents the DynamoDB table.
type DynamoDbCompTable struct {
	ddbClient *dynamodb.Client
	tableName string
	compTable *dynamo.Table
}

func NewDynamoDbCompTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbCompTable {
	ddb := &DynamoDbCompTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.compTable = &table

	return ddb
}

func (ddb *DynamoDbCompTable) Get(ctx context.Context, id string) (*CompRow, error) {
	row := new(CompRow)
	err := ddb.compTable.Get("comp_id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func (ddb *DynamoDbCompTable) List(ctx context.Context) ([]*CompRow, error) {
	var rows []*CompRow
	err := ddb.compTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (ddb *DynamoDbCompTable) Save(ctx context.Context, row *CompRow) error {
	row.Version++
	put := ddb.compTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

// InMemCompRepo is a map-backed CompRepo for tests and local runs.
type InMemCompRepo struct {
	mu   sync.RWMutex
	rows map[string]CompRow
}

func NewInMemCompRepo() *InMemCompRepo {
	return &InMemCompRepo{rows: make(map[string]CompRow)}
}

// Get implements CompRepo
func (r *InMemCompRepo) Get(ctx context.Context, id string) (*CompRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if row, ok := r.rows[id]; ok {
		return &row, nil
	}
	return nil, nil
}

// List implements CompRepo
func (r *InMemCompRepo) List(ctx context.Context) ([]*CompRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]*CompRow, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		rows = append(rows, &row)
	}
	return rows, nil
}

// Save implements CompRepo
func (r *InMemCompRepo) Save(ctx context.Context, row *CompRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row.Version++
	r.rows[row.ID] = *row
	return nil
}
