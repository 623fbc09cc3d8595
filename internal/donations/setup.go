package donations

import (
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Init must run after auth.Init.
func Init(d *gorm.DB) {
	if err := db.EnsureSchema(d, "donations"); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure schema donations")
	}

	if err := d.AutoMigrate(&DonationCenter{}, &Donation{}, &Appointment{}); err != nil {
		logrus.WithError(err).Fatal("Failed to auto-migrate donations tables")
	}

	for _, table := range []string{"donations", "appointments"} {
		fks := []db.ForeignKey{
			{
				Name:      "fk_" + table + "_user",
				Table:     "donations." + table,
				Column:    "user_id",
				RefTable:  "app_auth.users",
				RefColumn: "id",
			},
			{
				Name:      "fk_" + table + "_center",
				Table:     "donations." + table,
				Column:    "donation_center_id",
				RefTable:  "donations.centers",
				RefColumn: "id",
			},
		}
		for _, fk := range fks {
			if err := db.EnsureForeignKey(d, fk); err != nil {
				logrus.WithError(err).WithField("constraint", fk.Name).Fatal("Failed to install donations foreign keys")
			}
		}
	}
}
