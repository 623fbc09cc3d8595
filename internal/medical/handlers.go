package medical

import (
	"context"
	"net/http"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
)

type ProfileHandler struct {
	Store ProfileStore
}

// Load is used by /auth/me to embed the profile.
func (h *ProfileHandler) Load(ctx context.Context, accountID string) (any, error) {
	p, err := h.Store.GetOrCreate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	p, err := h.Store.GetOrCreate(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// Update serves PUT and PATCH. No profile field is required, so the two only
// differ in name.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var body ProfilePayload
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := body.Validate(httputil.IsPartial(r)); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	p, err := h.Store.GetOrCreate(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	body.ApplyTo(&p)

	if err := h.Store.Save(r.Context(), &p); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogUpdated(r.Context(), "profile", p.ID, accountID)
	httputil.WriteJSON(w, http.StatusOK, p)
}

type (
	AllergyHandler    = resource.Handler[Allergy, AllergyPayload, *Allergy, *AllergyPayload]
	MedicationHandler = resource.Handler[Medication, MedicationPayload, *Medication, *MedicationPayload]
	ConditionHandler  = resource.Handler[Condition, ConditionPayload, *Condition, *ConditionPayload]
)

// Handlers groups everything mounted by SetupRoutes.
type Handlers struct {
	Profile     *ProfileHandler
	Allergies   *AllergyHandler
	Medications *MedicationHandler
	Conditions  *ConditionHandler
}

func NewHandlers(profiles ProfileStore, allergies resource.Store[Allergy], medications resource.Store[Medication], conditions resource.Store[Condition]) *Handlers {
	return &Handlers{
		Profile:     &ProfileHandler{Store: profiles},
		Allergies:   resource.NewHandler[Allergy, AllergyPayload]("allergy", allergies),
		Medications: resource.NewHandler[Medication, MedicationPayload]("medication", medications),
		Conditions:  resource.NewHandler[Condition, ConditionPayload]("medical_condition", conditions),
	}
}
