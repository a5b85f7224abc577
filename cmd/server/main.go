package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/codeclash/backend/comp"
	"github.com/codeclash/backend/conf"
	backendhttp "github.com/codeclash/backend/http"
	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/progress"
	"github.com/codeclash/backend/user"
	"github.com/codeclash/backend/verdict"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	jwtKey := conf.GetJwtKeyFromEnv()

	ctx := context.Background()
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}
	ddbClient := dynamodb.NewFromConfig(awsCfg)

	userSrvc := user.NewUserSrvc(
		user.NewDynamoDbUserTable(ddbClient, conf.GetUsersTableName()))
	progressSrvc := progress.NewProgressSrvc(
		progress.NewDynamoDbProgressTable(ddbClient, conf.GetProgressTableName()),
		userSrvc)
	compSrvc := comp.NewCompSrvc(
		comp.NewDynamoDbCompTable(ddbClient, conf.GetCompsTableName()))
	problemSrvc := problem.NewProblemSrvc(
		problem.NewDynamoDbProblemTable(ddbClient, conf.GetProblemsTableName()))

	if sqsUrl := conf.GetVerdictSqsUrl(); sqsUrl != "" {
		consumer := verdict.NewConsumer(progressSrvc, problemSrvc, slog.Default())
		sqsClient := sqs.NewFromConfig(awsCfg)
		go func() {
			err := consumer.StartReceivingFromSqs(ctx, sqsUrl, sqsClient)
			if err != nil {
				slog.Error("verdict consumer stopped", "error", err)
			}
		}()
	} else {
		slog.Warn("VERDICT_SQS_URL is not set, verdict consumer disabled")
	}

	httpServer := backendhttp.NewHttpServer(
		progressSrvc, userSrvc, compSrvc, problemSrvc, jwtKey)

	address := ":" + conf.GetHttpPort()
	log.Printf("Starting server on %s", address)
	err = httpServer.Start(address)
	log.Printf("Server stopped with error: %v", err)
}
