package emergency

import (
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	BloodTypes       = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	Urgencies        = []string{access.UrgencyLow, access.UrgencyMedium, access.UrgencyHigh, access.UrgencyCritical}
	RequestStatuses  = []string{access.StatusActive, StatusFulfilled, StatusExpired, StatusCancelled}
	ResponseStatuses = []string{"interested", "confirmed", "completed", "cancelled"}
)

const (
	StatusFulfilled = "fulfilled"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

type Request struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	HospitalName     string    `gorm:"size:200;not null" json:"hospital_name"`
	BloodTypeNeeded  string    `gorm:"size:3;not null" json:"blood_type_needed"`
	UnitsNeeded      int       `gorm:"not null" json:"units_needed"`
	Urgency          string    `gorm:"size:10;not null" json:"urgency"`
	Status           string    `gorm:"size:10;not null;index:idx_emergency_feed,priority:1" json:"status"`
	PatientAge       *int      `json:"patient_age"`
	PatientCondition string    `gorm:"not null;default:''" json:"patient_condition"`
	ContactPerson    string    `gorm:"size:100;not null" json:"contact_person"`
	ContactPhone     string    `gorm:"size:15;not null" json:"contact_phone"`
	Location         string    `gorm:"not null" json:"location"`
	Latitude         *float64  `gorm:"type:numeric(10,8)" json:"latitude"`
	Longitude        *float64  `gorm:"type:numeric(11,8)" json:"longitude"`
	ExpiresAt        time.Time `gorm:"not null;index:idx_emergency_feed,priority:2" json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	ResponsesCount int `gorm:"-" json:"responses_count"`
}

type Response struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"id"`
	EmergencyRequestID string    `gorm:"type:uuid;not null;uniqueIndex:idx_emergency_response_once,priority:1" json:"-"`
	EmergencyRequest   Request   `gorm:"foreignKey:EmergencyRequestID" json:"emergency_request"`
	UserID             string    `gorm:"type:uuid;not null;uniqueIndex:idx_emergency_response_once,priority:2" json:"user"`
	Status             string    `gorm:"size:20;not null" json:"status"`
	ResponseTime       time.Time `gorm:"autoCreateTime" json:"response_time"`
	Notes              string    `gorm:"not null;default:''" json:"notes"`

	// retarget is set when a payload points the response at a request other
	// than the stored one.
	retarget bool
}

func (Request) TableName() string  { return "emergency.requests" }
func (Response) TableName() string { return "emergency.responses" }

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Request) SetDefaults() {
	r.Urgency = access.UrgencyMedium
	r.Status = access.StatusActive
}

// Visible reports whether responders can currently see r.
func (r *Request) Visible(now time.Time) bool {
	return access.Visible(r.Status, r.ExpiresAt, now)
}

func (r *Response) GetID() string        { return r.ID }
func (r *Response) GetOwnerID() string   { return r.UserID }
func (r *Response) SetOwnerID(id string) { r.UserID = id }
func (r *Response) SetDefaults()         { r.Status = "interested" }
