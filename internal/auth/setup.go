package auth

import (
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func Init(d *gorm.DB) {
	if err := db.EnsureSchema(d, "app_auth"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema app_auth")
	}

	if err := d.AutoMigrate(&Account{}, &Session{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate auth tables")
	}

	if err := db.EnsureForeignKey(d, db.ForeignKey{
		Name:      "fk_sessions_user",
		Table:     "app_auth.sessions",
		Column:    "user_id",
		RefTable:  "app_auth.users",
		RefColumn: "id",
	}); err != nil {
		logrus.WithError(err).Fatal("Failed to install auth foreign keys")
	}
}
