package resource

import (
	"context"
	"net/http"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/go-chi/chi/v5"
)

// CheckFunc runs after validation and before persistence, for rules that
// need the store (e.g. a referenced row must exist). row already has the
// payload applied.
type CheckFunc[R any] func(ctx context.Context, accountID string, row *R) error

// Handler serves one owned resource type. R is the row, T the payload.
type Handler[R any, T any, RP RowPtr[R], TP PayloadPtr[T, R]] struct {
	// Name is used in lifecycle logs ("allergy" -> allergy_id).
	Name  string
	Store Store[R]
	Check CheckFunc[R]
	// ConflictDetail replaces the detail of constraint violations on create.
	ConflictDetail string
}

func NewHandler[R any, T any, RP RowPtr[R], TP PayloadPtr[T, R]](name string, store Store[R]) *Handler[R, T, RP, TP] {
	return &Handler[R, T, RP, TP]{Name: name, Store: store}
}

// Routes mounts the collection at "/" and the item at "/{id}".
func (h *Handler[R, T, RP, TP]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler[R, T, RP, TP]) List(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	start := time.Now()
	rows, err := h.Store.List(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.AddServerTiming(w, "db", time.Since(start))
	httputil.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler[R, T, RP, TP]) decode(w http.ResponseWriter, r *http.Request, partial bool) (TP, error) {
	var body T
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		return nil, err
	}
	p := TP(&body)
	if err := p.Validate(partial); err != nil {
		return nil, err
	}
	return p, nil
}

func (h *Handler[R, T, RP, TP]) Create(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	body, err := h.decode(w, r, false)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var row R
	if d, ok := any(RP(&row)).(Defaulter); ok {
		d.SetDefaults()
	}
	body.ApplyTo(&row)
	RP(&row).SetOwnerID(accountID)

	if h.Check != nil {
		if err := h.Check(r.Context(), accountID, &row); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
	}

	if err := h.Store.Create(r.Context(), &row); err != nil {
		if h.ConflictDetail != "" && apperr.Is(err, apperr.KindConstraint) {
			err = apperr.Constraint(h.ConflictDetail, err)
		}
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogCreated(r.Context(), h.Name, RP(&row).GetID(), accountID)
	httputil.WriteJSON(w, http.StatusCreated, row)
}

func (h *Handler[R, T, RP, TP]) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	row, err := h.Store.Get(r.Context(), accountID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, row)
}

// Update serves PUT (full validation) and PATCH (partial).
func (h *Handler[R, T, RP, TP]) Update(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	row, err := h.Store.Get(r.Context(), accountID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	body, err := h.decode(w, r, httputil.IsPartial(r))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	body.ApplyTo(&row)
	RP(&row).SetOwnerID(accountID)

	if h.Check != nil {
		if err := h.Check(r.Context(), accountID, &row); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
	}

	if err := h.Store.Save(r.Context(), &row); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogUpdated(r.Context(), h.Name, RP(&row).GetID(), accountID)
	httputil.WriteJSON(w, http.StatusOK, row)
}

func (h *Handler[R, T, RP, TP]) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), accountID, id); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogDeleted(r.Context(), h.Name, id, accountID)
	w.WriteHeader(http.StatusNoContent)
}
