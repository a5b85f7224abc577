package problem

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// ProblemRow represents the stored problem data structure.
type ProblemRow struct {
	ID      string   `dynamo:"problem_id,hash"` // Primary key
	Name    string   `dynamo:"name"`
	Points  int      `dynamo:"points"`
	Tag     string   `dynamo:"tag"`
	Hints   []string `dynamo:"hints"`
	Version int      `dynamo:"version"` // For optimistic locking
}

// DynamoDbProblemTable represents the DynamoDB table.
type DynamoDbProblemTable struct {
	ddbClient *dynamodb.Client
	tableName string
	probTable *dynamo.Table
}

func NewDynamoDbProblemTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbProblemTable {
	ddb := &DynamoDbProblemTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.probTable = &table

	return ddb
}

func (ddb *DynamoDbProblemTable) Get(ctx context.Context, id string) (*ProblemRow, error) {
	row := new(ProblemRow)
	err := ddb.probTable.Get("problem_id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// GetMany retrieves problems by id in one batch. Ids that do not
// exist are silently skipped.
func (ddb *DynamoDbProblemTable) GetMany(ctx context.Context, ids []string) ([]*ProblemRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]dynamo.Keyed, len(ids))
	for i, id := range ids {
		keys[i] = dynamo.Keys{id}
	}

	var rows []*ProblemRow
	err := ddb.probTable.Batch("problem_id").Get(keys...).All(ctx, &rows)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return rows, nil
}

func (ddb *DynamoDbProblemTable) Save(ctx context.Context, row *ProblemRow) error {
	row.Version++
	put := ddb.probTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

// InMemProblemRepo is a map-backed ProblemRepo for tests and local runs.
type InMemProblemRepo struct {
	mu   sync.RWMutex
	rows map[string]ProblemRow
}

func NewInMemProblemRepo() *InMemProblemRepo {
	return &InMemProblemRepo{rows: make(map[string]ProblemRow)}
}

// Get implements ProblemRepo
func (r *InMemProblemRepo) Get(ctx context.Context, id string) (*ProblemRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if row, ok := r.rows[id]; ok {
		return &row, nil
	}
	return nil, nil
}

// GetMany implements ProblemRepo
func (r *InMemProblemRepo) GetMany(ctx context.Context, ids []string) ([]*ProblemRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]*ProblemRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			row := row
			rows = append(rows, &row)
		}
	}
	return rows, nil
}

// Save implements ProblemRepo
func (r *InMemProblemRepo) Save(ctx context.Context, row *ProblemRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row.Version++
	r.rows[row.ID] = *row
	return nil
}
