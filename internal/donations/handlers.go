package donations

import (
	"context"
	"net/http"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"github.com/go-chi/chi/v5"
)

const msgCenterNameTaken = "donation center with this name already exists."

type CenterHandler struct {
	Store CenterStore
}

func (h *CenterHandler) List(w http.ResponseWriter, r *http.Request) {
	centers, err := h.Store.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, centers)
}

func (h *CenterHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *CenterHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, _ := access.GetAccountIDFromContext(r.Context())

	var body CenterPayload
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := body.Validate(false); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var c DonationCenter
	c.SetDefaults()
	body.ApplyTo(&c)
	if err := h.Store.Create(r.Context(), &c); err != nil {
		httputil.WriteError(w, r, nameTaken(err))
		return
	}

	logging.LogCreated(r.Context(), "donation_center", c.ID, accountID)
	httputil.WriteJSON(w, http.StatusCreated, c)
}

// Update lets an admin edit any center, including reactivating one.
func (h *CenterHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, _ := access.GetAccountIDFromContext(r.Context())

	c, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var body CenterPayload
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := body.Validate(httputil.IsPartial(r)); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	body.ApplyTo(&c)

	if err := h.Store.Save(r.Context(), &c); err != nil {
		httputil.WriteError(w, r, nameTaken(err))
		return
	}

	logging.LogUpdated(r.Context(), "donation_center", c.ID, accountID)
	httputil.WriteJSON(w, http.StatusOK, c)
}

func nameTaken(err error) error {
	if apperr.Is(err, apperr.KindConstraint) {
		return apperr.Field("name", msgCenterNameTaken)
	}
	return err
}

type (
	DonationHandler    = resource.Handler[Donation, DonationPayload, *Donation, *DonationPayload]
	AppointmentHandler = resource.Handler[Appointment, AppointmentPayload, *Appointment, *AppointmentPayload]
)

// Handlers groups everything mounted by SetupRoutes.
type Handlers struct {
	Centers      *CenterHandler
	Donations    *DonationHandler
	Appointments *AppointmentHandler
}

func NewHandlers(centers CenterStore, donations resource.Store[Donation], appointments resource.Store[Appointment]) *Handlers {
	// Only a new center has to be active; rows keep working after their
	// center closes.
	requireCenter := RequireActiveCenter(centers)

	dh := resource.NewHandler[Donation, DonationPayload]("donation", donations)
	dh.Check = func(ctx context.Context, _ string, d *Donation) error {
		if !d.recenter {
			return nil
		}
		return requireCenter(ctx, d.DonationCenterID)
	}

	ah := resource.NewHandler[Appointment, AppointmentPayload]("appointment", appointments)
	ah.Check = func(ctx context.Context, _ string, a *Appointment) error {
		if !a.recenter {
			return nil
		}
		return requireCenter(ctx, a.DonationCenterID)
	}

	return &Handlers{
		Centers:      &CenterHandler{Store: centers},
		Donations:    dh,
		Appointments: ah,
	}
}
