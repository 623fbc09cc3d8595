package donations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	BloodTypes          = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	DonationStatuses    = []string{"scheduled", "completed", "cancelled", "no_show"}
	AppointmentStatuses = []string{"scheduled", "confirmed", "completed", "cancelled", "rescheduled"}
)

// DonationCenter is shared reference data. Name is the natural key used by
// seeding.
type DonationCenter struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Address        string    `gorm:"not null" json:"address"`
	PhoneNumber    string    `gorm:"size:15;not null" json:"phone_number"`
	Email          string    `gorm:"size:254;not null;default:''" json:"email"`
	Latitude       *float64  `gorm:"type:numeric(10,8)" json:"latitude"`
	Longitude      *float64  `gorm:"type:numeric(11,8)" json:"longitude"`
	OperatingHours string    `gorm:"not null;default:''" json:"operating_hours"`
	IsActive       bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type Donation struct {
	ID                string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID            string         `gorm:"type:uuid;not null;index" json:"user"`
	DonationCenterID  string         `gorm:"type:uuid;not null;index" json:"-"`
	DonationCenter    DonationCenter `gorm:"foreignKey:DonationCenterID" json:"donation_center"`
	ScheduledDate     time.Time      `gorm:"not null" json:"scheduled_date"`
	ActualDate        *time.Time     `json:"actual_date"`
	Status            string         `gorm:"size:20;not null" json:"status"`
	BloodType         string         `gorm:"size:3;not null;default:''" json:"blood_type"`
	UnitsCollected    *float64       `gorm:"type:numeric(4,2)" json:"units_collected"`
	PreScreeningNotes string         `gorm:"not null;default:''" json:"pre_screening_notes"`
	PostDonationNotes string         `gorm:"not null;default:''" json:"post_donation_notes"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	// recenter is set when the last applied payload changed the center.
	recenter bool
}

type Appointment struct {
	ID                    string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID                string         `gorm:"type:uuid;not null;index" json:"user"`
	DonationCenterID      string         `gorm:"type:uuid;not null;index" json:"-"`
	DonationCenter        DonationCenter `gorm:"foreignKey:DonationCenterID" json:"donation_center"`
	AppointmentDate       time.Time      `gorm:"not null" json:"appointment_date"`
	Status                string         `gorm:"size:20;not null" json:"status"`
	ReminderSent          bool           `gorm:"not null" json:"reminder_sent"`
	PreScreeningCompleted bool           `gorm:"not null" json:"pre_screening_completed"`
	Notes                 string         `gorm:"not null;default:''" json:"notes"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`

	recenter bool
}

func (DonationCenter) TableName() string { return "donations.centers" }
func (Donation) TableName() string       { return "donations.donations" }
func (Appointment) TableName() string    { return "donations.appointments" }

func (c *DonationCenter) BeforeCreate(tx *gorm.DB) error { return assignID(&c.ID) }
func (d *Donation) BeforeCreate(tx *gorm.DB) error       { return assignID(&d.ID) }
func (a *Appointment) BeforeCreate(tx *gorm.DB) error    { return assignID(&a.ID) }

func assignID(id *string) error {
	if *id == "" {
		*id = uuid.NewString()
	}
	return nil
}

func (c *DonationCenter) SetDefaults() { c.IsActive = true }

func (d *Donation) GetID() string        { return d.ID }
func (d *Donation) GetOwnerID() string   { return d.UserID }
func (d *Donation) SetOwnerID(id string) { d.UserID = id }
func (d *Donation) SetDefaults()         { d.Status = "scheduled" }

func (a *Appointment) GetID() string        { return a.ID }
func (a *Appointment) GetOwnerID() string   { return a.UserID }
func (a *Appointment) SetOwnerID(id string) { a.UserID = id }
func (a *Appointment) SetDefaults()         { a.Status = "scheduled" }
