package verdict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/codeclash/backend/logger"
	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/progress"
)

// VerdictAccepted is the only verdict that awards points. Everything
// else is recorded by the judge and ignored here.
const VerdictAccepted = "accepted"

// VerdictMsg is the body the judge posts to the verdict queue after
// finishing a submission run.
type VerdictMsg struct {
	CompetitionID string `json:"competition_id"`
	ContestantID  string `json:"contestant_id"`
	ProblemID     string `json:"problem_id"`
	Verdict       string `json:"verdict"`
}

// SolveSettler settles an accepted solve. Satisfied by
// progress.ProgressSrvc.
type SolveSettler interface {
	RecordSolve(ctx context.Context, compID string, contestantID string, problemID string, points int) (progress.Settlement, error)
}

// PointsSource resolves a problem's award value. Satisfied by
// problem.ProblemSrvc.
type PointsSource interface {
	Get(ctx context.Context, id string) (*problem.Problem, error)
}

// Consumer drains the verdict queue and settles accepted solves.
type Consumer struct {
	settler  SolveSettler
	problems PointsSource
	logger   *slog.Logger
}

func NewConsumer(settler SolveSettler, problems PointsSource, logger *slog.Logger) *Consumer {
	return &Consumer{
		settler:  settler,
		problems: problems,
		logger:   logger,
	}
}

// Handle settles a single verdict message. Non-accepted verdicts are
// a no-op. Settlement is idempotent, so redelivered messages are safe
// to handle again.
func (c *Consumer) Handle(ctx context.Context, msg VerdictMsg) error {
	if msg.Verdict != VerdictAccepted {
		return nil
	}

	ctx = logger.WithCompetition(logger.WithLogger(ctx, c.logger), msg.CompetitionID)

	prob, err := c.problems.Get(ctx, msg.ProblemID)
	if err != nil {
		return fmt.Errorf("resolve problem %s: %w", msg.ProblemID, err)
	}

	settlement, err := c.settler.RecordSolve(ctx,
		msg.CompetitionID, msg.ContestantID, msg.ProblemID, prob.Points)
	if err != nil {
		return fmt.Errorf("settle solve: %w", err)
	}

	if settlement.AlreadySolved {
		c.logger.Info("verdict redelivered for solved problem",
			"competition", msg.CompetitionID,
			"contestant", msg.ContestantID,
			"problem", msg.ProblemID)
	} else {
		c.logger.Info("solve settled",
			"competition", msg.CompetitionID,
			"contestant", msg.ContestantID,
			"problem", msg.ProblemID,
			"points", prob.Points,
			"totalPoints", settlement.NewPoints)
	}
	return nil
}

// StartReceivingFromSqs receives verdict msgs until ctx is cancelled.
// Malformed bodies are logged and deleted so they do not wedge the
// queue; settle failures leave the message for redelivery.
func (c *Consumer) StartReceivingFromSqs(ctx context.Context, sqsUrl string, client *sqs.Client) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			output, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
				QueueUrl:            aws.String(sqsUrl),
				MaxNumberOfMessages: 10,
				WaitTimeSeconds:     1,
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error("failed to receive messages", "error", err)
				continue
			}

			for _, raw := range output.Messages {
				if raw.Body == nil {
					return fmt.Errorf("message body is nil")
				}
				if raw.ReceiptHandle == nil {
					return fmt.Errorf("receipt handle is nil")
				}
				handle := *raw.ReceiptHandle

				var msg VerdictMsg
				err = json.Unmarshal([]byte(*raw.Body), &msg)
				if err != nil || msg.CompetitionID == "" || msg.ContestantID == "" || msg.ProblemID == "" {
					c.logger.Error("dropping malformed verdict message",
						"body", *raw.Body,
						"error", err)
					c.deleteMsg(sqsUrl, client, handle)
					continue
				}

				go func(msg VerdictMsg, handle string) {
					err := c.Handle(context.TODO(), msg)
					if err != nil {
						c.logger.Error("failed to process verdict", "error", err)
						return // left on the queue for redelivery
					}
					c.deleteMsg(sqsUrl, client, handle)
				}(msg, handle)
			}
		}
	}
}

func (c *Consumer) deleteMsg(sqsUrl string, client *sqs.Client, handle string) {
	_, err := client.DeleteMessage(context.TODO(), &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(sqsUrl),
		ReceiptHandle: aws.String(handle),
	})
	if err != nil {
		c.logger.Error("failed to ack message", "error", err)
	}
}
