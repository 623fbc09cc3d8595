package emergency

import (
	"encoding/json"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
)

type RequestPayload struct {
	HospitalName     *string         `json:"hospital_name"`
	BloodTypeNeeded  *string         `json:"blood_type_needed"`
	UnitsNeeded      json.RawMessage `json:"units_needed"`
	Urgency          *string         `json:"urgency"`
	Status           *string         `json:"status"`
	PatientAge       json.RawMessage `json:"patient_age"`
	PatientCondition *string         `json:"patient_condition"`
	ContactPerson    *string         `json:"contact_person"`
	ContactPhone     *string         `json:"contact_phone"`
	Location         *string         `json:"location"`
	Latitude         json.RawMessage `json:"latitude"`
	Longitude        json.RawMessage `json:"longitude"`
	ExpiresAt        *string         `json:"expires_at"`

	unitsNeeded, patientAge validate.Nullable[int]
	latitude, longitude     validate.Nullable[float64]
	expiresAt               validate.Nullable[time.Time]
}

func (p *RequestPayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("hospital_name", p.HospitalName, true, 200)
	c.Choice("blood_type_needed", p.BloodTypeNeeded, true, false, BloodTypes...)
	p.unitsNeeded = c.Int("units_needed", p.UnitsNeeded, true, 1)
	c.Choice("urgency", p.Urgency, false, false, Urgencies...)
	c.Choice("status", p.Status, false, false, RequestStatuses...)
	p.patientAge = c.Int("patient_age", p.PatientAge, false, 0)
	c.String("patient_condition", p.PatientCondition, false, 0)
	c.String("contact_person", p.ContactPerson, true, 100)
	c.String("contact_phone", p.ContactPhone, true, 15)
	c.String("location", p.Location, true, 0)
	p.latitude = c.Coordinate("latitude", p.Latitude, 90)
	p.longitude = c.Coordinate("longitude", p.Longitude, 180)
	p.expiresAt = c.DateTime("expires_at", p.ExpiresAt, true)
	return c.Err()
}

func (p *RequestPayload) ApplyTo(r *Request) {
	setString(&r.HospitalName, p.HospitalName)
	setString(&r.BloodTypeNeeded, p.BloodTypeNeeded)
	if p.unitsNeeded.Val != nil {
		r.UnitsNeeded = *p.unitsNeeded.Val
	}
	setString(&r.Urgency, p.Urgency)
	setString(&r.Status, p.Status)
	if p.patientAge.Set {
		r.PatientAge = p.patientAge.Val
	}
	setString(&r.PatientCondition, p.PatientCondition)
	setString(&r.ContactPerson, p.ContactPerson)
	setString(&r.ContactPhone, p.ContactPhone)
	setString(&r.Location, p.Location)
	if p.latitude.Set {
		r.Latitude = p.latitude.Val
	}
	if p.longitude.Set {
		r.Longitude = p.longitude.Val
	}
	if p.expiresAt.Val != nil {
		r.ExpiresAt = *p.expiresAt.Val
	}
}

type ResponsePayload struct {
	EmergencyRequestID *string `json:"emergency_request_id"`
	Status             *string `json:"status"`
	Notes              *string `json:"notes"`
}

func (p *ResponsePayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("emergency_request_id", p.EmergencyRequestID, true, 0)
	c.Choice("status", p.Status, false, false, ResponseStatuses...)
	c.String("notes", p.Notes, false, 0)
	return c.Err()
}

func (p *ResponsePayload) ApplyTo(r *Response) {
	r.retarget = p.EmergencyRequestID != nil && *p.EmergencyRequestID != r.EmergencyRequestID
	setString(&r.EmergencyRequestID, p.EmergencyRequestID)
	setString(&r.Status, p.Status)
	setString(&r.Notes, p.Notes)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
