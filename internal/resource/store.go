package resource

import (
	"context"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the Postgres Store for any owned row type.
type GormStore[R any, P RowPtr[R]] struct {
	db      *gorm.DB
	order   string
	preload []string
}

// NewGormStore orders lists by order and eager-loads the named associations
// on every read.
func NewGormStore[R any, P RowPtr[R]](d *gorm.DB, order string, preload ...string) *GormStore[R, P] {
	return &GormStore[R, P]{db: d, order: order, preload: preload}
}

func (s *GormStore[R, P]) query(ctx context.Context, ownerID string) *gorm.DB {
	q := s.db.WithContext(ctx).Scopes(access.OwnedBy(ownerID))
	for _, assoc := range s.preload {
		q = q.Preload(assoc)
	}
	return q
}

func (s *GormStore[R, P]) List(ctx context.Context, ownerID string) ([]R, error) {
	rows := []R{}
	q := s.query(ctx, ownerID)
	if s.order != "" {
		q = q.Order(s.order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore[R, P]) Get(ctx context.Context, ownerID, id string) (R, error) {
	var row R
	if !ValidID(id) {
		return row, apperr.NotFound("not found")
	}
	err := s.query(ctx, ownerID).Where("id = ?", id).First(&row).Error
	return row, db.Translate(err)
}

func (s *GormStore[R, P]) Create(ctx context.Context, row *R) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return db.Translate(err)
	}
	return s.reload(ctx, row)
}

func (s *GormStore[R, P]) Save(ctx context.Context, row *R) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(row).Error; err != nil {
		return db.Translate(err)
	}
	return s.reload(ctx, row)
}

// reload refreshes associations after a write.
func (s *GormStore[R, P]) reload(ctx context.Context, row *R) error {
	if len(s.preload) == 0 {
		return nil
	}
	p := P(row)
	fresh, err := s.Get(ctx, p.GetOwnerID(), p.GetID())
	if err != nil {
		return err
	}
	*row = fresh
	return nil
}

func (s *GormStore[R, P]) Delete(ctx context.Context, ownerID, id string) error {
	if !ValidID(id) {
		return apperr.NotFound("not found")
	}
	res := s.db.WithContext(ctx).Scopes(access.OwnedBy(ownerID)).Where("id = ?", id).Delete(new(R))
	if res.Error != nil {
		return db.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("not found")
	}
	return nil
}

// ValidID reports whether id can be a row id. Anything else is not found
// rather than a database error.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
