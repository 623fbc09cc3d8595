package emergency

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"github.com/go-chi/chi/v5"
)

type RequestHandler struct {
	Store RequestStore
	Now   func() time.Time
}

// List is the responder feed: active, unexpired, most urgent first.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requests, err := h.Store.ListVisible(r.Context(), h.Now())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.AddServerTiming(w, "db", time.Since(start))
	httputil.WriteJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.Store.GetVisible(r.Context(), chi.URLParam(r, "id"), h.Now())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, _ := access.GetAccountIDFromContext(r.Context())

	var body RequestPayload
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := body.Validate(false); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var req Request
	req.SetDefaults()
	body.ApplyTo(&req)
	if err := h.Store.Create(r.Context(), &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogCreated(r.Context(), "emergency_request", req.ID, accountID)
	httputil.WriteJSON(w, http.StatusCreated, req)
}

// Update lets an admin edit any request, visible or not.
func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, _ := access.GetAccountIDFromContext(r.Context())

	req, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var body RequestPayload
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := body.Validate(httputil.IsPartial(r)); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	body.ApplyTo(&req)

	if err := h.Store.Save(r.Context(), &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogUpdated(r.Context(), "emergency_request", req.ID, accountID)
	httputil.WriteJSON(w, http.StatusOK, req)
}

type ResponseHandler = resource.Handler[Response, ResponsePayload, *Response, *ResponsePayload]

// Handlers groups everything mounted by SetupRoutes.
type Handlers struct {
	Requests  *RequestHandler
	Responses *ResponseHandler
}

// NewHandlers wires the feed and the response resource. now is the clock for
// every visibility check; nil means time.Now.
func NewHandlers(requests RequestStore, responses resource.Store[Response], now func() time.Time) *Handlers {
	if now == nil {
		now = time.Now
	}

	rh := resource.NewHandler[Response, ResponsePayload]("emergency_response", responses)
	rh.ConflictDetail = "already responded"
	rh.Check = func(ctx context.Context, _ string, resp *Response) error {
		if !resp.retarget {
			return nil
		}
		id := resp.EmergencyRequestID
		if _, err := requests.GetVisible(ctx, id, now()); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Field("emergency_request_id", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
			}
			return err
		}
		return nil
	}

	return &Handlers{
		Requests:  &RequestHandler{Store: requests, Now: now},
		Responses: rh,
	}
}
