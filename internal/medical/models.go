package medical

import (
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var Severities = []string{"mild", "moderate", "severe"}

// AccountSummary is the read-only view of app_auth.users embedded in a
// profile.
type AccountSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (AccountSummary) TableName() string { return "app_auth.users" }

type Profile struct {
	ID                           string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID                       string         `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	User                         AccountSummary `gorm:"foreignKey:UserID" json:"user"`
	BloodType                    string         `gorm:"size:3;not null;default:''" json:"blood_type"`
	Weight                       *float64       `gorm:"type:numeric(5,2)" json:"weight"`
	Height                       *float64       `gorm:"type:numeric(5,2)" json:"height"`
	DateOfBirth                  *validate.Date `json:"date_of_birth"`
	PhoneNumber                  string         `gorm:"size:15;not null;default:''" json:"phone_number"`
	Address                      string         `gorm:"not null;default:''" json:"address"`
	EmergencyContactName         string         `gorm:"size:100;not null;default:''" json:"emergency_contact_name"`
	EmergencyContactPhone        string         `gorm:"size:15;not null;default:''" json:"emergency_contact_phone"`
	EmergencyContactRelationship string         `gorm:"size:50;not null;default:''" json:"emergency_contact_relationship"`
	LastCheckup                  *validate.Date `json:"last_checkup"`
	DonationEligibility          bool           `gorm:"not null" json:"donation_eligibility"`
	CreatedAt                    time.Time      `json:"-"`
	UpdatedAt                    time.Time      `json:"-"`

	Allergies         []Allergy    `gorm:"foreignKey:UserID;references:UserID" json:"allergies"`
	Medications       []Medication `gorm:"foreignKey:UserID;references:UserID" json:"medications"`
	MedicalConditions []Condition  `gorm:"foreignKey:UserID;references:UserID" json:"medical_conditions"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Allergy struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"-"`
	AllergyName string    `gorm:"size:100;not null" json:"allergy_name"`
	Severity    string    `gorm:"size:20;not null" json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

type Medication struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string         `gorm:"type:uuid;not null;index" json:"-"`
	MedicationName string         `gorm:"size:100;not null" json:"medication_name"`
	Dosage         string         `gorm:"size:50;not null;default:''" json:"dosage"`
	Frequency      string         `gorm:"size:50;not null;default:''" json:"frequency"`
	StartDate      *validate.Date `json:"start_date"`
	EndDate        *validate.Date `json:"end_date"`
	IsActive       bool           `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time      `json:"-"`
}

type Condition struct {
	ID            string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string         `gorm:"type:uuid;not null;index" json:"-"`
	ConditionName string         `gorm:"size:100;not null" json:"condition_name"`
	DiagnosedDate *validate.Date `json:"diagnosed_date"`
	IsChronic     bool           `gorm:"not null" json:"is_chronic"`
	Notes         string         `gorm:"not null;default:''" json:"notes"`
	CreatedAt     time.Time      `json:"-"`
}

func (Profile) TableName() string    { return "medical.profiles" }
func (Allergy) TableName() string    { return "medical.allergies" }
func (Medication) TableName() string { return "medical.medications" }
func (Condition) TableName() string  { return "medical.conditions" }

func (a *Allergy) BeforeCreate(tx *gorm.DB) error    { return assignID(&a.ID) }
func (m *Medication) BeforeCreate(tx *gorm.DB) error { return assignID(&m.ID) }
func (c *Condition) BeforeCreate(tx *gorm.DB) error  { return assignID(&c.ID) }

func assignID(id *string) error {
	if *id == "" {
		*id = uuid.NewString()
	}
	return nil
}

func (a *Allergy) GetID() string        { return a.ID }
func (a *Allergy) GetOwnerID() string   { return a.UserID }
func (a *Allergy) SetOwnerID(id string) { a.UserID = id }
func (a *Allergy) SetDefaults()         { a.Severity = "mild" }

func (m *Medication) GetID() string        { return m.ID }
func (m *Medication) GetOwnerID() string   { return m.UserID }
func (m *Medication) SetOwnerID(id string) { m.UserID = id }
func (m *Medication) SetDefaults()         { m.IsActive = true }

func (c *Condition) GetID() string        { return c.ID }
func (c *Condition) GetOwnerID() string   { return c.UserID }
func (c *Condition) SetOwnerID(id string) { c.UserID = id }
