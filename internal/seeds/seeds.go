package seeds

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/donations"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/emergency"
	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed data/sample_data.yaml
var sampleData []byte

type Center struct {
	Name           string `yaml:"name"`
	Address        string `yaml:"address"`
	PhoneNumber    string `yaml:"phone_number"`
	Email          string `yaml:"email"`
	OperatingHours string `yaml:"operating_hours"`
}

type Request struct {
	HospitalName     string `yaml:"hospital_name"`
	BloodTypeNeeded  string `yaml:"blood_type_needed"`
	UnitsNeeded      int    `yaml:"units_needed"`
	Urgency          string `yaml:"urgency"`
	PatientAge       *int   `yaml:"patient_age"`
	PatientCondition string `yaml:"patient_condition"`
	ContactPerson    string `yaml:"contact_person"`
	ContactPhone     string `yaml:"contact_phone"`
	Location         string `yaml:"location"`
	ExpiresIn        string `yaml:"expires_in"`
}

type SampleData struct {
	Centers  []Center  `yaml:"centers"`
	Requests []Request `yaml:"emergency_requests"`
}

// Load parses the embedded sample data.
func Load() (SampleData, error) {
	var data SampleData
	if err := yaml.Unmarshal(sampleData, &data); err != nil {
		return SampleData{}, fmt.Errorf("parse sample data: %w", err)
	}
	for _, r := range data.Requests {
		if _, err := time.ParseDuration(r.ExpiresIn); err != nil {
			return SampleData{}, fmt.Errorf("request %s: expires_in: %w", r.HospitalName, err)
		}
	}
	return data, nil
}

// Result counts rows inserted by SeedAll.
type Result struct {
	Centers  int
	Requests int
}

// SeedAll inserts the sample centers and emergency requests that are not
// already present. Request expiries are relative to now.
func SeedAll(ctx context.Context, d *gorm.DB, now time.Time) (Result, error) {
	data, err := Load()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, c := range data.Centers {
		center := &donations.DonationCenter{
			Name:           c.Name,
			Address:        c.Address,
			PhoneNumber:    c.PhoneNumber,
			Email:          c.Email,
			OperatingHours: c.OperatingHours,
		}
		center.SetDefaults()
		created, err := donations.EnsureCenter(ctx, d, center)
		if err != nil {
			return res, fmt.Errorf("seed center %s: %w", c.Name, err)
		}
		if created {
			res.Centers++
			logrus.WithField("center", c.Name).Info("Created donation center")
		}
	}

	for _, r := range data.Requests {
		ttl, _ := time.ParseDuration(r.ExpiresIn)
		req := &emergency.Request{
			HospitalName:     r.HospitalName,
			BloodTypeNeeded:  r.BloodTypeNeeded,
			UnitsNeeded:      r.UnitsNeeded,
			Urgency:          r.Urgency,
			Status:           access.StatusActive,
			PatientAge:       r.PatientAge,
			PatientCondition: r.PatientCondition,
			ContactPerson:    r.ContactPerson,
			ContactPhone:     r.ContactPhone,
			Location:         r.Location,
			ExpiresAt:        now.Add(ttl),
		}
		created, err := emergency.EnsureRequest(ctx, d, req)
		if err != nil {
			return res, fmt.Errorf("seed request %s: %w", r.HospitalName, err)
		}
		if created {
			res.Requests++
			logrus.WithFields(logrus.Fields{
				"hospital":   r.HospitalName,
				"blood_type": r.BloodTypeNeeded,
			}).Info("Created emergency request")
		}
	}
	return res, nil
}
