package emergency

import (
	"context"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RequestStore serves the emergency feed. The Visible methods apply the feed
// predicate at now; Get, Create and Save are for admins.
type RequestStore interface {
	ListVisible(ctx context.Context, now time.Time) ([]Request, error)
	GetVisible(ctx context.Context, id string, now time.Time) (Request, error)
	Get(ctx context.Context, id string) (Request, error)
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type GormRequestStore struct {
	db *gorm.DB
}

func NewGormRequestStore(d *gorm.DB) *GormRequestStore {
	return &GormRequestStore{db: d}
}

func (s *GormRequestStore) ListVisible(ctx context.Context, now time.Time) ([]Request, error) {
	requests := []Request{}
	err := s.db.WithContext(ctx).
		Scopes(access.EmergencyFeed(now), access.ByUrgency).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillCounts(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *GormRequestStore) GetVisible(ctx context.Context, id string, now time.Time) (Request, error) {
	return s.get(ctx, id, access.EmergencyFeed(now))
}

func (s *GormRequestStore) Get(ctx context.Context, id string) (Request, error) {
	return s.get(ctx, id)
}

func (s *GormRequestStore) get(ctx context.Context, id string, scopes ...func(*gorm.DB) *gorm.DB) (Request, error) {
	var r Request
	if !resource.ValidID(id) {
		return r, apperr.NotFound("not found")
	}
	if err := s.db.WithContext(ctx).Scopes(scopes...).Where("id = ?", id).First(&r).Error; err != nil {
		return r, db.Translate(err)
	}
	one := []Request{r}
	if err := s.fillCounts(ctx, one); err != nil {
		return r, err
	}
	return one[0], nil
}

type responseCount struct {
	EmergencyRequestID string
	Count              int
}

// fillCounts sets ResponsesCount on every request with one grouped query.
func (s *GormRequestStore) fillCounts(ctx context.Context, requests []Request) error {
	if len(requests) == 0 {
		return nil
	}
	ids := make([]string, len(requests))
	for i := range requests {
		ids[i] = requests[i].ID
	}

	var counts []responseCount
	err := s.db.WithContext(ctx).
		Model(&Response{}).
		Select("emergency_request_id, COUNT(*) AS count").
		Where("emergency_request_id::text = ANY(?)", pq.Array(ids)).
		Group("emergency_request_id").
		Scan(&counts).Error
	if err != nil {
		return db.Translate(err)
	}

	byID := make(map[string]int, len(counts))
	for _, c := range counts {
		byID[c.EmergencyRequestID] = c.Count
	}
	for i := range requests {
		requests[i].ResponsesCount = byID[requests[i].ID]
	}
	return nil
}

func (s *GormRequestStore) Create(ctx context.Context, r *Request) error {
	return db.Translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *GormRequestStore) Save(ctx context.Context, r *Request) error {
	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return db.Translate(err)
	}
	one := []Request{*r}
	if err := s.fillCounts(ctx, one); err != nil {
		return err
	}
	*r = one[0]
	return nil
}

// ExpireStale moves active requests whose expiry has passed to expired and
// returns how many changed.
func (s *GormRequestStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&Request{}).
		Where("status = ? AND expires_at <= ?", access.StatusActive, now).
		Updates(map[string]any{"status": StatusExpired, "updated_at": now})
	return res.RowsAffected, db.Translate(res.Error)
}

// EnsureRequest inserts r unless a request for the same hospital and blood
// type exists.
func EnsureRequest(ctx context.Context, d *gorm.DB, r *Request) (bool, error) {
	return db.GetOrCreate(ctx, d, r, map[string]any{
		"hospital_name":     r.HospitalName,
		"blood_type_needed": r.BloodTypeNeeded,
	})
}

func NewResponseStore(d *gorm.DB) resource.Store[Response] {
	return resource.NewGormStore[Response](d, "response_time DESC", "EmergencyRequest")
}
