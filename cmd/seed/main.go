package main

import (
	"context"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/config"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/migrate"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/seeds"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logging.Setup(cfg.LogLevel)

	d, err := db.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	migrate.All(d)

	res, err := seeds.SeedAll(context.Background(), d, time.Now())
	if err != nil {
		logrus.WithError(err).Fatal("Seeding failed")
	}
	logrus.WithFields(logrus.Fields{
		"centers":  res.Centers,
		"requests": res.Requests,
	}).Info("Successfully created sample data")
}
