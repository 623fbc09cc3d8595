package main

import (
	"context"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/auth"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/config"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/medical"
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

	created, err := seeds.EnsureTestUser(context.Background(), auth.NewGormStore(d, medical.CreateDefaultProfile))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create test user")
	}
	if !created {
		logrus.Warn("Test user already exists")
		return
	}
	logrus.WithField("username", seeds.TestUsername).Info("Test user created successfully")
}
