package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/config"
	"org-calendar-api/internal/handler"
	"org-calendar-api/internal/logging"
	"org-calendar-api/internal/store"
)

func setup(ctx context.Context) (*handler.Handler, *config.Config, error) {
	if _, err := maxprocs.Set(); err != nil {
		return nil, nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log = log.WithField("component", "lambda")

	// the pool outlives invocations while the execution environment is warm
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to postgres %w", err)
	}
	st := store.New(pool)
	agg := calendar.NewAggregator(calendar.SourcesFrom(st), log)

	// feed reads only, so nothing is ever enqueued
	return handler.New(agg, st, nil, log), cfg, nil
}

func main() {
	h, cfg, err := setup(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("setup")
	}
	lambda.Start(h.APIGateway(cfg.JWTSecret))
}
