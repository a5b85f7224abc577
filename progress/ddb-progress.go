package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/guregu/dynamo/v2"
)

// progressRow is the stored shape of a CompetitionProgress record.
// The (comp_id, user_id) table key is what makes the pair unique;
// problems is a map attribute keyed by problem id so a sub-entry
// update is a direct document path, not a list scan.
type progressRow struct {
	CompID string `dynamo:"comp_id,hash"`  // partition key
	UserID string `dynamo:"user_id,range"` // sort key

	Points   int                   `dynamo:"points"`
	Problems map[string]problemRow `dynamo:"problems"`

	CreatedAtRfc3339 string `dynamo:"created_at_rfc3339_utc"`
}

type problemRow struct {
	Solved    bool `dynamo:"solved" dynamodbav:"solved"`
	HintsUsed int  `dynamo:"hints_used" dynamodbav:"hints_used"`
	Awarded   int  `dynamo:"awarded" dynamodbav:"awarded"`
}

// DynamoDbProgressTable implements Repo on a DynamoDB table. All
// mutations are single UpdateItem/PutItem calls whose condition
// expression carries the check, so they serialize at the storage
// layer across any number of server instances.
type DynamoDbProgressTable struct {
	ddbClient *dynamodb.Client
	tableName string
	progTable *dynamo.Table
}

func NewDynamoDbProgressTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbProgressTable {
	ddb := &DynamoDbProgressTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.progTable = &table

	return ddb
}

func progressKey(competitionID, contestantID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"comp_id": &types.AttributeValueMemberS{Value: competitionID},
		"user_id": &types.AttributeValueMemberS{Value: contestantID},
	}
}

func isCondCheckFailed(err error) bool {
	var condFailed *types.ConditionalCheckFailedException
	return errors.As(err, &condFailed)
}

// GetOrCreate inserts the zero record guarded by item absence. The
// item is built by hand so the problems attribute always exists as an
// empty map; nested SET paths below rely on the parent being there.
func (ddb *DynamoDbProgressTable) GetOrCreate(ctx context.Context, competitionID, contestantID string) (CompetitionProgress, error) {
	item := progressKey(competitionID, contestantID)
	item["points"] = &types.AttributeValueMemberN{Value: "0"}
	item["problems"] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{}}
	item["created_at_rfc3339_utc"] = &types.AttributeValueMemberS{
		Value: time.Now().UTC().Format(time.RFC3339)}

	_, err := ddb.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(ddb.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(comp_id)"),
	})
	if err == nil {
		return CompetitionProgress{
			CompetitionID: competitionID,
			ContestantID:  contestantID,
			Problems:      map[string]ProblemProgress{},
		}, nil
	}
	if !isCondCheckFailed(err) {
		return CompetitionProgress{}, fmt.Errorf("failed to create progress record: %w", err)
	}

	// the record already exists, read it back
	existing, err := ddb.Get(ctx, competitionID, contestantID)
	if err != nil {
		return CompetitionProgress{}, err
	}
	if existing == nil {
		// lost both the insert and the read; the caller retries
		return CompetitionProgress{}, fmt.Errorf("progress record vanished between put and get")
	}
	return *existing, nil
}

func (ddb *DynamoDbProgressTable) Get(ctx context.Context, competitionID, contestantID string) (*CompetitionProgress, error) {
	row := new(progressRow)
	err := ddb.progTable.Get("comp_id", competitionID).
		Range("user_id", dynamo.Equal, contestantID).
		One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress record: %w", err)
	}
	prog := rowToProgress(row)
	return &prog, nil
}

func (ddb *DynamoDbProgressTable) ListByCompetition(ctx context.Context, competitionID string) ([]CompetitionProgress, error) {
	var rows []progressRow
	err := ddb.progTable.Get("comp_id", competitionID).All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}

	records := make([]CompetitionProgress, len(rows))
	for i := range rows {
		records[i] = rowToProgress(&rows[i])
	}
	return records, nil
}

func (ddb *DynamoDbProgressTable) InitHint(ctx context.Context, competitionID, contestantID, problemID string) error {
	entry := problemRow{Solved: false, HintsUsed: 1}

	upd := expression.Set(
		expression.Name("problems."+problemID),
		expression.Value(entry))
	cond := expression.AttributeExists(expression.Name("comp_id")).And(
		expression.AttributeNotExists(expression.Name("problems." + problemID)))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build init hint expression: %w", err)
	}

	_, err = ddb.ddbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ddb.tableName),
		Key:                       progressKey(competitionID, contestantID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isCondCheckFailed(err) {
			return ErrCondFailed
		}
		return fmt.Errorf("failed to init hint sub-entry: %w", err)
	}
	return nil
}

func (ddb *DynamoDbProgressTable) BumpHint(ctx context.Context, competitionID, contestantID, problemID string, fromHints int) error {
	upd := expression.Set(
		expression.Name("problems."+problemID+".hints_used"),
		expression.Value(fromHints+1))
	cond := expression.Name("problems." + problemID + ".hints_used").
		Equal(expression.Value(fromHints))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build bump hint expression: %w", err)
	}

	_, err = ddb.ddbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ddb.tableName),
		Key:                       progressKey(competitionID, contestantID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isCondCheckFailed(err) {
			return ErrCondFailed
		}
		return fmt.Errorf("failed to bump hint counter: %w", err)
	}
	return nil
}

func (ddb *DynamoDbProgressTable) MarkSolved(ctx context.Context, competitionID, contestantID, problemID string, points int) (int, error) {
	upd := expression.
		Set(expression.Name("problems."+problemID+".solved"), expression.Value(true)).
		Set(expression.Name("problems."+problemID+".awarded"), expression.Value(points)).
		Add(expression.Name("points"), expression.Value(points))
	cond := expression.Name("problems." + problemID + ".solved").
		Equal(expression.Value(false))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark solved expression: %w", err)
	}

	out, err := ddb.ddbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ddb.tableName),
		Key:                       progressKey(competitionID, contestantID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isCondCheckFailed(err) {
			return 0, ErrCondFailed
		}
		return 0, fmt.Errorf("failed to mark problem solved: %w", err)
	}
	return pointsFromAttrs(out.Attributes)
}

func (ddb *DynamoDbProgressTable) InsertSolved(ctx context.Context, competitionID, contestantID, problemID string, points int) (int, error) {
	entry := problemRow{Solved: true, HintsUsed: 0, Awarded: points}

	upd := expression.
		Set(expression.Name("problems."+problemID), expression.Value(entry)).
		Add(expression.Name("points"), expression.Value(points))
	cond := expression.AttributeExists(expression.Name("comp_id")).And(
		expression.AttributeNotExists(expression.Name("problems." + problemID)))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert solved expression: %w", err)
	}

	out, err := ddb.ddbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ddb.tableName),
		Key:                       progressKey(competitionID, contestantID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isCondCheckFailed(err) {
			return 0, ErrCondFailed
		}
		return 0, fmt.Errorf("failed to insert solved sub-entry: %w", err)
	}
	return pointsFromAttrs(out.Attributes)
}

func pointsFromAttrs(attrs map[string]types.AttributeValue) (int, error) {
	var updated struct {
		Points int `dynamodbav:"points"`
	}
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return 0, fmt.Errorf("failed to unmarshal updated points: %w", err)
	}
	return updated.Points, nil
}

func rowToProgress(row *progressRow) CompetitionProgress {
	problems := make(map[string]ProblemProgress, len(row.Problems))
	for id, p := range row.Problems {
		problems[id] = ProblemProgress{
			Solved:    p.Solved,
			HintsUsed: p.HintsUsed,
			Awarded:   p.Awarded,
		}
	}
	return CompetitionProgress{
		CompetitionID: row.CompID,
		ContestantID:  row.UserID,
		Points:        row.Points,
		Problems:      problems,
	}
}
