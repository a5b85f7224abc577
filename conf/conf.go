package conf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetProgressTableName() string {
	return envOr("PROGRESS_TABLE_NAME", "cc_progress")
}

func GetUsersTableName() string {
	return envOr("USERS_TABLE_NAME", "cc_users")
}

func GetCompsTableName() string {
	return envOr("COMPS_TABLE_NAME", "cc_comps")
}

func GetProblemsTableName() string {
	return envOr("PROBLEMS_TABLE_NAME", "cc_problems")
}

func GetVerdictSqsUrl() string {
	return os.Getenv("VERDICT_SQS_URL")
}

func GetHttpPort() string {
	return envOr("PORT", "8080")
}

// GetJwtKeyFromEnv returns the JWT signing key. Local runs set
// JWT_SECRET_KEY directly; deployed environments name a secret in AWS
// Secrets Manager instead.
func GetJwtKeyFromEnv() []byte {
	if key := os.Getenv("JWT_SECRET_KEY"); key != "" {
		return []byte(key)
	}
	secretName := os.Getenv("JWT_SECRET_NAME")
	secretValue, err := getSecretFromAWS(secretName)
	if err != nil {
		panic(fmt.Sprintf("failed to get jwt key from AWS: %v", err))
	}
	var secret struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal([]byte(secretValue), &secret); err != nil {
		panic(fmt.Sprintf("failed to parse jwt key secret: %v", err))
	}
	return []byte(secret.Key)
}

func getSecretFromAWS(secretName string) (string, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", err
	}
	svc := secretsmanager.NewFromConfig(cfg)
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := svc.GetSecretValue(ctx, input)
	if err != nil {
		return "", err
	}
	return *result.SecretString, nil
}
