package emergency

import (
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Init must run after auth.Init.
func Init(d *gorm.DB) {
	if err := db.EnsureSchema(d, "emergency"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema emergency")
	}

	if err := d.AutoMigrate(&Request{}, &Response{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate emergency tables")
	}

	fks := []db.ForeignKey{
		{
			Name:      "fk_emergency_responses_request",
			Table:     "emergency.responses",
			Column:    "emergency_request_id",
			RefTable:  "emergency.requests",
			RefColumn: "id",
		},
		{
			Name:      "fk_emergency_responses_user",
			Table:     "emergency.responses",
			Column:    "user_id",
			RefTable:  "app_auth.users",
			RefColumn: "id",
		},
	}
	for _, fk := range fks {
		if err := db.EnsureForeignKey(d, fk); err != nil {
			logrus.WithError(err).WithField("constraint", fk.Name).Fatal("Failed to install emergency foreign keys")
		}
	}
}
