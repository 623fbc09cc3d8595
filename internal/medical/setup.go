package medical

import (
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Init must run after auth.Init; every table here references app_auth.users.
func Init(d *gorm.DB) {
	if err := db.EnsureSchema(d, "medical"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema medical")
	}

	if err := d.AutoMigrate(&Profile{}, &Allergy{}, &Medication{}, &Condition{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate medical tables")
	}

	for _, table := range []string{"profiles", "allergies", "medications", "conditions"} {
		fk := db.ForeignKey{
			Name:      "fk_medical_" + table + "_user",
			Table:     "medical." + table,
			Column:    "user_id",
			RefTable:  "app_auth.users",
			RefColumn: "id",
		}
		if err := db.EnsureForeignKey(d, fk); err != nil {
			logrus.WithError(err).Fatal("Failed to install medical foreign keys")
		}
	}
}
