package user

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// UserRow represents the stored user data structure.
type UserRow struct {
	Uuid              string    `dynamo:"uuid,hash"` // Primary key
	Email             string    `dynamo:"email"`
	Nick              string    `dynamo:"nick"`
	YearLevel         string    `dynamo:"year_level"`
	PreferredLanguage string    `dynamo:"preferred_language"`
	BcryptPwd         []byte    `dynamo:"bcrypt_pwd"`
	Version           int       `dynamo:"version"` // For optimistic locking
	CreatedAt         time.Time `dynamo:"created_at"`
}

// DynamoDbUserTable represents the DynamoDB table.
type DynamoDbUserTable struct {
	ddbClient  *dynamodb.Client
	tableName  string
	usersTable *dynamo.Table
}

// NewDynamoDbUserTable initializes a new DynamoDbUserTable.
func NewDynamoDbUserTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbUserTable {
	ddb := &DynamoDbUserTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.usersTable = &table

	return ddb
}

// Get retrieves a user by ID from the DynamoDB table.
func (ddb *DynamoDbUserTable) Get(ctx context.Context, uuid uuid.UUID) (*UserRow, error) {
	row := new(UserRow)

	err := ddb.usersTable.Get("uuid", uuid.String()).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return row, nil
}

// GetMany retrieves users by id in one batch. Ids that do not exist
// are silently skipped.
func (ddb *DynamoDbUserTable) GetMany(ctx context.Context, uuids []string) ([]*UserRow, error) {
	if len(uuids) == 0 {
		return nil, nil
	}

	keys := make([]dynamo.Keyed, len(uuids))
	for i, id := range uuids {
		keys[i] = dynamo.Keys{id}
	}

	var rows []*UserRow
	err := ddb.usersTable.Batch("uuid").Get(keys...).All(ctx, &rows)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return rows, nil
}

func (ddb *DynamoDbUserTable) List(ctx context.Context) ([]*UserRow, error) {
	var rows []*UserRow
	err := ddb.usersTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Save saves a user to the DynamoDB table with optimistic locking.
func (ddb *DynamoDbUserTable) Save(ctx context.Context, row *UserRow) error {
	// Increment the version number for optimistic locking
	row.Version++

	put := ddb.usersTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}
