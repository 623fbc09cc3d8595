package resource_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID     string `json:"id"`
	UserID string `json:"user"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (n *note) GetID() string        { return n.ID }
func (n *note) GetOwnerID() string   { return n.UserID }
func (n *note) SetOwnerID(id string) { n.UserID = id }

type notePayload struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

func (p *notePayload) Validate(partial bool) error {
	c := validate.New(partial)
	c.String("title", p.Title, true, 20)
	c.String("body", p.Body, false, 0)
	return c.Err()
}

func (p *notePayload) ApplyTo(n *note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Body != nil {
		n.Body = *p.Body
	}
}

// memStore mirrors GormStore's owner scoping over a map.
type memStore struct {
	mu   sync.Mutex
	rows map[string]note
	dup  bool
}

func (m *memStore) List(ctx context.Context, ownerID string) ([]note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []note{}
	for _, n := range m.rows {
		if n.UserID == ownerID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memStore) Get(ctx context.Context, ownerID, id string) (note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	if !ok || n.UserID != ownerID {
		return note{}, apperr.NotFound("not found")
	}
	return n, nil
}

func (m *memStore) Create(ctx context.Context, n *note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dup {
		return apperr.Constraint("duplicate key", nil)
	}
	n.ID = uuid.NewString()
	m.rows[n.ID] = *n
	return nil
}

func (m *memStore) Save(ctx context.Context, n *note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[n.ID] = *n
	return nil
}

func (m *memStore) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	if !ok || n.UserID != ownerID {
		return apperr.NotFound("not found")
	}
	delete(m.rows, id)
	return nil
}

type fixture struct {
	store   *memStore
	handler *resource.Handler[note, notePayload, *note, *notePayload]
	router  chi.Router
}

func newFixture() *fixture {
	store := &memStore{rows: map[string]note{}}
	h := resource.NewHandler[note, notePayload](
		"note", store)
	r := chi.NewRouter()
	r.Route("/notes", h.Routes)
	return &fixture{store: store, handler: h, router: r}
}

func (f *fixture) do(t *testing.T, accountID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if accountID != "" {
		req = req.WithContext(access.WithIdentity(req.Context(), accountID, "sess-"+accountID))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) create(t *testing.T, accountID, title string) note {
	t.Helper()
	rec := f.do(t, accountID, http.MethodPost, "/notes/", map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var n note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
	return n
}

func TestCreateSetsOwnerFromIdentity(t *testing.T) {
	f := newFixture()

	rec := f.do(t, "alice", http.MethodPost, "/notes/", map[string]string{"title": "iron", "user": "mallory"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var n note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
	assert.Equal(t, "alice", n.UserID)
}

func TestCreateValidationPersistsNothing(t *testing.T) {
	f := newFixture()

	rec := f.do(t, "alice", http.MethodPost, "/notes/", map[string]string{"body": "no title"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":["This field is required."]`)
	assert.Empty(t, f.store.rows)
}

func TestRequiresIdentity(t *testing.T) {
	f := newFixture()
	n := f.create(t, "alice", "mine")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/notes/"},
		{http.MethodPost, "/notes/"},
		{http.MethodGet, "/notes/" + n.ID},
		{http.MethodPatch, "/notes/" + n.ID},
		{http.MethodDelete, "/notes/" + n.ID},
	} {
		rec := f.do(t, "", tc.method, tc.path, map[string]string{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}

// TestOtherAccountSeesNotFound checks that B can never read, change or
// delete A's row, and gets 404 rather than 403.
func TestOtherAccountSeesNotFound(t *testing.T) {
	f := newFixture()
	n := f.create(t, "alice", "mine")

	rec := f.do(t, "bob", http.MethodGet, "/notes/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, f.do(t, "bob", http.MethodGet, "/notes/"+n.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "bob", http.MethodPut, "/notes/"+n.ID, map[string]string{"title": "stolen"}).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "bob", http.MethodPatch, "/notes/"+n.ID, map[string]string{"title": "stolen"}).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "bob", http.MethodDelete, "/notes/"+n.ID, nil).Code)

	stored := f.store.rows[n.ID]
	assert.Equal(t, "mine", stored.Title)
	assert.Equal(t, "alice", stored.UserID)
}

func TestListOnlyOwnRows(t *testing.T) {
	f := newFixture()
	f.create(t, "alice", "a1")
	f.create(t, "alice", "a2")
	f.create(t, "bob", "b1")

	rec := f.do(t, "alice", http.MethodGet, "/notes/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "alice", r.UserID)
	}
	assert.NotEmpty(t, rec.Header().Get("Server-Timing"))
}

func TestPutRequiresFieldsPatchDoesNot(t *testing.T) {
	f := newFixture()
	n := f.create(t, "alice", "first")

	rec := f.do(t, "alice", http.MethodPut, "/notes/"+n.ID, map[string]string{"body": "text"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, "alice", http.MethodPatch, "/notes/"+n.ID, map[string]string{"body": "text"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored := f.store.rows[n.ID]
	assert.Equal(t, "first", stored.Title)
	assert.Equal(t, "text", stored.Body)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	n := f.create(t, "alice", "gone")

	assert.Equal(t, http.StatusNoContent, f.do(t, "alice", http.MethodDelete, "/notes/"+n.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "alice", http.MethodGet, "/notes/"+n.ID, nil).Code)
}

func TestCheckHookRejects(t *testing.T) {
	f := newFixture()
	f.handler.Check = func(ctx context.Context, accountID string, n *note) error {
		if n.Title == "forbidden" {
			return apperr.Field("title", "not allowed")
		}
		return nil
	}

	rec := f.do(t, "alice", http.MethodPost, "/notes/", map[string]string{"title": "forbidden"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.store.rows)
}

func TestConflictDetail(t *testing.T) {
	f := newFixture()
	f.handler.ConflictDetail = "already exists"
	f.store.dup = true

	rec := f.do(t, "alice", http.MethodPost, "/notes/", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"detail":"already exists"`)
}

func TestMalformedBody(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString("{not json"))
	req = req.WithContext(access.WithIdentity(req.Context(), "alice", "s"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed JSON")
}
