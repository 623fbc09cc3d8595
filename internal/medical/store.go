package medical

import (
	"context"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileStore reads and writes the caller's single profile.
type ProfileStore interface {
	GetOrCreate(ctx context.Context, accountID string) (Profile, error)
	Save(ctx context.Context, p *Profile) error
}

type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(d *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: d}
}

func newProfile(accountID string) *Profile {
	return &Profile{UserID: accountID, DonationEligibility: true}
}

// CreateDefaultProfile is the registration bootstrap: it inserts an empty
// profile inside the caller's transaction.
func CreateDefaultProfile(ctx context.Context, tx *gorm.DB, accountID string) error {
	_, err := db.GetOrCreate(ctx, tx, newProfile(accountID), map[string]any{"user_id": accountID})
	return err
}

// GetOrCreate returns the account's profile with its account summary and
// medical history, creating an empty profile on first access.
func (s *GormProfileStore) GetOrCreate(ctx context.Context, accountID string) (Profile, error) {
	created, err := db.GetOrCreate(ctx, s.db, newProfile(accountID), map[string]any{"user_id": accountID})
	if apperr.Is(err, apperr.KindConstraint) {
		// A concurrent first request inserted the profile.
		created, err = false, nil
	}
	if err != nil {
		return Profile{}, err
	}
	if created {
		logging.FromContext(ctx).WithField("account_id", accountID).Info("profile created on first access")
	}
	return s.load(ctx, accountID)
}

func (s *GormProfileStore) load(ctx context.Context, accountID string) (Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Allergies", orderBy("created_at ASC")).
		Preload("Medications", orderBy("created_at ASC")).
		Preload("MedicalConditions", orderBy("created_at ASC")).
		First(&p, "user_id = ?", accountID).Error
	return p, db.Translate(err)
}

func (s *GormProfileStore) Save(ctx context.Context, p *Profile) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return db.Translate(err)
	}
	fresh, err := s.load(ctx, p.UserID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

func orderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx.Order(order) }
}

func NewAllergyStore(d *gorm.DB) resource.Store[Allergy] {
	return resource.NewGormStore[Allergy](d, "created_at ASC")
}

func NewMedicationStore(d *gorm.DB) resource.Store[Medication] {
	return resource.NewGormStore[Medication](d, "created_at ASC")
}

func NewConditionStore(d *gorm.DB) resource.Store[Condition] {
	return resource.NewGormStore[Condition](d, "created_at ASC")
}
