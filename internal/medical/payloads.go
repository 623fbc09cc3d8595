package medical

import (
	"encoding/json"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
)

type ProfilePayload struct {
	BloodType                    *string         `json:"blood_type"`
	Weight                       json.RawMessage `json:"weight"`
	Height                       json.RawMessage `json:"height"`
	DateOfBirth                  *string         `json:"date_of_birth"`
	PhoneNumber                  *string         `json:"phone_number"`
	Address                      *string         `json:"address"`
	EmergencyContactName         *string         `json:"emergency_contact_name"`
	EmergencyContactPhone        *string         `json:"emergency_contact_phone"`
	EmergencyContactRelationship *string         `json:"emergency_contact_relationship"`
	LastCheckup                  *string         `json:"last_checkup"`
	DonationEligibility          *bool           `json:"donation_eligibility"`

	weight, height           validate.Nullable[float64]
	dateOfBirth, lastCheckup validate.Nullable[time.Time]
}

const (
	weightRangeMsg = "Weight must be between 1 and 300 kg."
	heightRangeMsg = "Height must be between 1 and 300 cm."
)

func (p *ProfilePayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.Choice("blood_type", p.BloodType, false, true, BloodTypes...)
	p.weight = c.Decimal("weight", p.Weight, false, 2, 0, 300, weightRangeMsg)
	p.height = c.Decimal("height", p.Height, false, 2, 0, 300, heightRangeMsg)
	p.dateOfBirth = c.Date("date_of_birth", p.DateOfBirth, false)
	c.String("phone_number", p.PhoneNumber, false, 15)
	c.String("address", p.Address, false, 0)
	c.String("emergency_contact_name", p.EmergencyContactName, false, 100)
	c.String("emergency_contact_phone", p.EmergencyContactPhone, false, 15)
	c.String("emergency_contact_relationship", p.EmergencyContactRelationship, false, 50)
	p.lastCheckup = c.Date("last_checkup", p.LastCheckup, false)
	return c.Err()
}

func (p *ProfilePayload) ApplyTo(row *Profile) {
	setString(&row.BloodType, p.BloodType)
	if p.weight.Set {
		row.Weight = p.weight.Val
	}
	if p.height.Set {
		row.Height = p.height.Val
	}
	if p.dateOfBirth.Set {
		row.DateOfBirth = validate.DateValue(p.dateOfBirth)
	}
	setString(&row.PhoneNumber, p.PhoneNumber)
	setString(&row.Address, p.Address)
	setString(&row.EmergencyContactName, p.EmergencyContactName)
	setString(&row.EmergencyContactPhone, p.EmergencyContactPhone)
	setString(&row.EmergencyContactRelationship, p.EmergencyContactRelationship)
	if p.lastCheckup.Set {
		row.LastCheckup = validate.DateValue(p.lastCheckup)
	}
	if p.DonationEligibility != nil {
		row.DonationEligibility = *p.DonationEligibility
	}
}

type AllergyPayload struct {
	AllergyName *string `json:"allergy_name"`
	Severity    *string `json:"severity"`
}

func (p *AllergyPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("allergy_name", p.AllergyName, true, 100)
	c.Choice("severity", p.Severity, false, false, Severities...)
	return c.Err()
}

func (p *AllergyPayload) ApplyTo(row *Allergy) {
	setString(&row.AllergyName, p.AllergyName)
	setString(&row.Severity, p.Severity)
}

type MedicationPayload struct {
	MedicationName *string `json:"medication_name"`
	Dosage         *string `json:"dosage"`
	Frequency      *string `json:"frequency"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	IsActive       *bool   `json:"is_active"`

	startDate, endDate validate.Nullable[time.Time]
}

func (p *MedicationPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("medication_name", p.MedicationName, true, 100)
	c.String("dosage", p.Dosage, false, 50)
	c.String("frequency", p.Frequency, false, 50)
	p.startDate = c.Date("start_date", p.StartDate, false)
	p.endDate = c.Date("end_date", p.EndDate, false)
	return c.Err()
}

func (p *MedicationPayload) ApplyTo(row *Medication) {
	setString(&row.MedicationName, p.MedicationName)
	setString(&row.Dosage, p.Dosage)
	setString(&row.Frequency, p.Frequency)
	if p.startDate.Set {
		row.StartDate = validate.DateValue(p.startDate)
	}
	if p.endDate.Set {
		row.EndDate = validate.DateValue(p.endDate)
	}
	if p.IsActive != nil {
		row.IsActive = *p.IsActive
	}
}

type ConditionPayload struct {
	ConditionName *string `json:"condition_name"`
	DiagnosedDate *string `json:"diagnosed_date"`
	IsChronic     *bool   `json:"is_chronic"`
	Notes         *string `json:"notes"`

	diagnosedDate validate.Nullable[time.Time]
}

func (p *ConditionPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("condition_name", p.ConditionName, true, 100)
	p.diagnosedDate = c.Date("diagnosed_date", p.DiagnosedDate, false)
	c.String("notes", p.Notes, false, 0)
	return c.Err()
}

func (p *ConditionPayload) ApplyTo(row *Condition) {
	setString(&row.ConditionName, p.ConditionName)
	if p.diagnosedDate.Set {
		row.DiagnosedDate = validate.DateValue(p.diagnosedDate)
	}
	if p.IsChronic != nil {
		row.IsChronic = *p.IsChronic
	}
	setString(&row.Notes, p.Notes)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
