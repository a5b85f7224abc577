package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codeclash/backend/comp"
	"github.com/codeclash/backend/conf"
	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/progress"
	"github.com/codeclash/backend/user"
)

func main() {
	_ = godotenv.Load()

	var logLevel string

	var rootCmd = &cobra.Command{
		Use:   "codeclash",
		Short: "Admin CLI tool for the codeclash backend",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitializeLogger(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level [debug, info, warn, error]")

	rootCmd.AddCommand(compCmd())
	rootCmd.AddCommand(problemCmd())
	rootCmd.AddCommand(progressCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newDdbClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS config")
	}
	return dynamodb.NewFromConfig(cfg)
}

func compCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "comp",
		Short: "Manage competitions",
	}

	var id, name, start, end, problems string

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create or overwrite a competition",
		Run: func(cmd *cobra.Command, args []string) {
			startTime, err := time.Parse(time.RFC3339, start)
			if err != nil {
				log.Fatal().Err(err).Msg("bad --start")
			}
			endTime, err := time.Parse(time.RFC3339, end)
			if err != nil {
				log.Fatal().Err(err).Msg("bad --end")
			}

			repo := comp.NewDynamoDbCompTable(newDdbClient(), conf.GetCompsTableName())
			row := &comp.CompRow{
				ID:         id,
				Name:       name,
				StartTime:  startTime,
				EndTime:    endTime,
				ProblemIDs: strings.Split(problems, ","),
			}
			if existing, err := repo.Get(context.Background(), id); err == nil && existing != nil {
				row.Version = existing.Version
			}
			if err := repo.Save(context.Background(), row); err != nil {
				log.Fatal().Err(err).Msg("failed to save competition")
			}
			log.Info().Str("id", id).Msg("competition saved")
		},
	}

	createCmd.Flags().StringVar(&id, "id", "", "Competition id (required)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	createCmd.Flags().StringVar(&start, "start", "", "Start time, RFC3339 (required)")
	createCmd.Flags().StringVar(&end, "end", "", "End time, RFC3339 (required)")
	createCmd.Flags().StringVar(&problems, "problems", "", "Comma-separated problem ids")
	createCmd.MarkFlagRequired("id")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("start")
	createCmd.MarkFlagRequired("end")

	cmd.AddCommand(createCmd)
	return cmd
}

func problemCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "problem",
		Short: "Manage problems",
	}

	var id, name, tag, hints string
	var points int

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create or overwrite a problem",
		Run: func(cmd *cobra.Command, args []string) {
			var hintList []string
			if hints != "" {
				hintList = strings.Split(hints, "|")
			}

			repo := problem.NewDynamoDbProblemTable(newDdbClient(), conf.GetProblemsTableName())
			row := &problem.ProblemRow{
				ID:     id,
				Name:   name,
				Points: points,
				Tag:    tag,
				Hints:  hintList,
			}
			if existing, err := repo.Get(context.Background(), id); err == nil && existing != nil {
				row.Version = existing.Version
			}
			if err := repo.Save(context.Background(), row); err != nil {
				log.Fatal().Err(err).Msg("failed to save problem")
			}
			log.Info().Str("id", id).Int("points", points).Msg("problem saved")
		},
	}

	createCmd.Flags().StringVar(&id, "id", "", "Problem id (required)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	createCmd.Flags().IntVar(&points, "points", 0, "Award value (required)")
	createCmd.Flags().StringVar(&tag, "tag", "", "Topic tag")
	createCmd.Flags().StringVar(&hints, "hints", "", "Hint texts separated by '|'")
	createCmd.MarkFlagRequired("id")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("points")

	cmd.AddCommand(createCmd)
	return cmd
}

func progressCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "progress",
		Short: "Inspect contestant progress",
	}

	var compId, contestantId string

	var recomputeCmd = &cobra.Command{
		Use:   "recompute",
		Short: "Recompute a contestant's points from their solved problems",
		Run: func(cmd *cobra.Command, args []string) {
			ddb := newDdbClient()
			userSrvc := user.NewUserSrvc(
				user.NewDynamoDbUserTable(ddb, conf.GetUsersTableName()))
			srvc := progress.NewProgressSrvc(
				progress.NewDynamoDbProgressTable(ddb, conf.GetProgressTableName()),
				userSrvc)

			rec, err := srvc.Get(context.Background(), compId, contestantId)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to fetch progress")
			}
			sum, err := srvc.RecomputePoints(context.Background(), compId, contestantId)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to recompute points")
			}

			if sum == rec.Points {
				log.Info().Int("points", sum).Msg("cached total matches recomputed sum")
			} else {
				log.Warn().
					Int("cached", rec.Points).
					Int("recomputed", sum).
					Msg("cached total drifted from recomputed sum")
			}
		},
	}

	recomputeCmd.Flags().StringVar(&compId, "comp", "", "Competition id (required)")
	recomputeCmd.Flags().StringVar(&contestantId, "contestant", "", "Contestant id (required)")
	recomputeCmd.MarkFlagRequired("comp")
	recomputeCmd.MarkFlagRequired("contestant")

	cmd.AddCommand(recomputeCmd)
	return cmd
}
