package donations

import (
	"context"
	"fmt"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"gorm.io/gorm"
)

// CenterStore is the shared, non-owned center catalogue. Readers only ever
// see active centers; Get is for admin edits.
type CenterStore interface {
	ListActive(ctx context.Context) ([]DonationCenter, error)
	GetActive(ctx context.Context, id string) (DonationCenter, error)
	Get(ctx context.Context, id string) (DonationCenter, error)
	Create(ctx context.Context, c *DonationCenter) error
	Save(ctx context.Context, c *DonationCenter) error
}

type GormCenterStore struct {
	db *gorm.DB
}

func NewGormCenterStore(d *gorm.DB) *GormCenterStore {
	return &GormCenterStore{db: d}
}

func (s *GormCenterStore) ListActive(ctx context.Context) ([]DonationCenter, error) {
	centers := []DonationCenter{}
	err := s.db.WithContext(ctx).Scopes(access.ActiveCenters).Order("name ASC").Find(&centers).Error
	if err != nil {
		return nil, err
	}
	return centers, nil
}

func (s *GormCenterStore) GetActive(ctx context.Context, id string) (DonationCenter, error) {
	return s.get(ctx, id, access.ActiveCenters)
}

func (s *GormCenterStore) Get(ctx context.Context, id string) (DonationCenter, error) {
	return s.get(ctx, id)
}

func (s *GormCenterStore) get(ctx context.Context, id string, scopes ...func(*gorm.DB) *gorm.DB) (DonationCenter, error) {
	var c DonationCenter
	if !resource.ValidID(id) {
		return c, apperr.NotFound("not found")
	}
	err := s.db.WithContext(ctx).Scopes(scopes...).Where("id = ?", id).First(&c).Error
	return c, db.Translate(err)
}

func (s *GormCenterStore) Create(ctx context.Context, c *DonationCenter) error {
	return db.Translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormCenterStore) Save(ctx context.Context, c *DonationCenter) error {
	return db.Translate(s.db.WithContext(ctx).Save(c).Error)
}

// EnsureCenter inserts c unless a center with the same name exists. c is
// replaced with the stored row either way.
func EnsureCenter(ctx context.Context, d *gorm.DB, c *DonationCenter) (bool, error) {
	return db.GetOrCreate(ctx, d, c, map[string]any{"name": c.Name})
}

// RequireActiveCenter is the booking rule shared by donations and
// appointments: the referenced center must exist and be active.
func RequireActiveCenter(centers CenterStore) func(ctx context.Context, id string) error {
	return func(ctx context.Context, id string) error {
		if _, err := centers.GetActive(ctx, id); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Field("donation_center_id", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
			}
			return err
		}
		return nil
	}
}

func NewDonationStore(d *gorm.DB) resource.Store[Donation] {
	return resource.NewGormStore[Donation](d, "scheduled_date DESC", "DonationCenter")
}

func NewAppointmentStore(d *gorm.DB) resource.Store[Appointment] {
	return resource.NewGormStore[Appointment](d, "appointment_date ASC", "DonationCenter")
}
