package donations

import (
	"encoding/json"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
)

type CenterPayload struct {
	Name           *string         `json:"name"`
	Address        *string         `json:"address"`
	PhoneNumber    *string         `json:"phone_number"`
	Email          *string         `json:"email"`
	Latitude       json.RawMessage `json:"latitude"`
	Longitude      json.RawMessage `json:"longitude"`
	OperatingHours *string         `json:"operating_hours"`
	IsActive       *bool           `json:"is_active"`

	latitude, longitude validate.Nullable[float64]
}

func (p *CenterPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("name", p.Name, true, 200)
	c.String("address", p.Address, true, 0)
	c.String("phone_number", p.PhoneNumber, true, 15)
	c.String("email", p.Email, false, 254)
	c.Email("email", p.Email)
	p.latitude = c.Coordinate("latitude", p.Latitude, 90)
	p.longitude = c.Coordinate("longitude", p.Longitude, 180)
	c.String("operating_hours", p.OperatingHours, false, 0)
	return c.Err()
}

func (p *CenterPayload) ApplyTo(row *DonationCenter) {
	setString(&row.Name, p.Name)
	setString(&row.Address, p.Address)
	setString(&row.PhoneNumber, p.PhoneNumber)
	setString(&row.Email, p.Email)
	if p.latitude.Set {
		row.Latitude = p.latitude.Val
	}
	if p.longitude.Set {
		row.Longitude = p.longitude.Val
	}
	setString(&row.OperatingHours, p.OperatingHours)
	if p.IsActive != nil {
		row.IsActive = *p.IsActive
	}
}

type DonationPayload struct {
	DonationCenterID  *string         `json:"donation_center_id"`
	ScheduledDate     *string         `json:"scheduled_date"`
	ActualDate        *string         `json:"actual_date"`
	Status            *string         `json:"status"`
	BloodType         *string         `json:"blood_type"`
	UnitsCollected    json.RawMessage `json:"units_collected"`
	PreScreeningNotes *string         `json:"pre_screening_notes"`
	PostDonationNotes *string         `json:"post_donation_notes"`

	scheduledDate, actualDate validate.Nullable[time.Time]
	unitsCollected            validate.Nullable[float64]
}

func (p *DonationPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("donation_center_id", p.DonationCenterID, true, 0)
	p.scheduledDate = c.DateTime("scheduled_date", p.ScheduledDate, true)
	p.actualDate = c.DateTime("actual_date", p.ActualDate, false)
	c.Choice("status", p.Status, false, false, DonationStatuses...)
	c.Choice("blood_type", p.BloodType, false, true, BloodTypes...)
	p.unitsCollected = c.Decimal("units_collected", p.UnitsCollected, false, 2, 0, 99.99,
		"Ensure this value is greater than 0 and at most 99.99.")
	c.String("pre_screening_notes", p.PreScreeningNotes, false, 0)
	c.String("post_donation_notes", p.PostDonationNotes, false, 0)
	return c.Err()
}

func (p *DonationPayload) ApplyTo(row *Donation) {
	row.recenter = changes(p.DonationCenterID, row.DonationCenterID)
	setString(&row.DonationCenterID, p.DonationCenterID)
	if p.scheduledDate.Val != nil {
		row.ScheduledDate = *p.scheduledDate.Val
	}
	if p.actualDate.Set {
		row.ActualDate = p.actualDate.Val
	}
	setString(&row.Status, p.Status)
	setString(&row.BloodType, p.BloodType)
	if p.unitsCollected.Set {
		row.UnitsCollected = p.unitsCollected.Val
	}
	setString(&row.PreScreeningNotes, p.PreScreeningNotes)
	setString(&row.PostDonationNotes, p.PostDonationNotes)
}

type AppointmentPayload struct {
	DonationCenterID      *string `json:"donation_center_id"`
	AppointmentDate       *string `json:"appointment_date"`
	Status                *string `json:"status"`
	ReminderSent          *bool   `json:"reminder_sent"`
	PreScreeningCompleted *bool   `json:"pre_screening_completed"`
	Notes                 *string `json:"notes"`

	appointmentDate validate.Nullable[time.Time]
}

func (p *AppointmentPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("donation_center_id", p.DonationCenterID, true, 0)
	p.appointmentDate = c.DateTime("appointment_date", p.AppointmentDate, true)
	c.Choice("status", p.Status, false, false, AppointmentStatuses...)
	c.String("notes", p.Notes, false, 0)
	return c.Err()
}

func (p *AppointmentPayload) ApplyTo(row *Appointment) {
	row.recenter = changes(p.DonationCenterID, row.DonationCenterID)
	setString(&row.DonationCenterID, p.DonationCenterID)
	if p.appointmentDate.Val != nil {
		row.AppointmentDate = *p.appointmentDate.Val
	}
	setString(&row.Status, p.Status)
	if p.ReminderSent != nil {
		row.ReminderSent = *p.ReminderSent
	}
	if p.PreScreeningCompleted != nil {
		row.PreScreeningCompleted = *p.PreScreeningCompleted
	}
	setString(&row.Notes, p.Notes)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func changes(v *string, current string) bool {
	return v != nil && *v != current
}
