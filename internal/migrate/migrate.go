package migrate

import (
	"github.com/EmpoweredVote/BloodBank-Backend/internal/auth"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/donations"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/emergency"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/medical"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Step migrates one schema. Needs lists the schemas its foreign keys point at.
type Step struct {
	Schema string
	Needs  []string
	Init   func(d *gorm.DB)
}

// Steps is the migration order. Every schema references app_auth.users, so
// auth comes first.
func Steps() []Step {
	return []Step{
		{Schema: "app_auth", Init: auth.Init},
		{Schema: "donations", Needs: []string{"app_auth"}, Init: donations.Init},
		{Schema: "emergency", Needs: []string{"app_auth"}, Init: emergency.Init},
		{Schema: "medical", Needs: []string{"app_auth"}, Init: medical.Init},
	}
}

// All creates or updates every schema in dependency order. Any failure is
// fatal.
func All(d *gorm.DB) {
	for _, step := range Steps() {
		step.Init(d)
		logrus.WithField("schema", step.Schema).Debug("schema migrated")
	}
}
