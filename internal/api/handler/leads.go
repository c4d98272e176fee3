package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandboost/leadmanager/internal/api/respond"
	"github.com/brandboost/leadmanager/internal/lead"
)

var contactNumberRe = regexp.MustCompile(`^\d{10}$`)

// CreateLead handles POST /api/leads. After the lead commits, the
// lead-created notification and the payment-due evaluation run; their
// failures are logged but never turn a successful create into an error
// response.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var l lead.Lead
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}

	if msg := validateLead(&l); msg != "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}

	created, err := h.leads.Create(r.Context(), &l)
	if err != nil {
		h.logger.Error("create lead failed", "company", l.CompanyName, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create lead")
		return
	}

	if _, err := h.evaluator.RecordLeadCreated(r.Context(), *created); err != nil {
		h.logger.Warn("lead-created notification failed", "lead_id", created.ID, "error", err)
	}
	if created.PendingAmountDueDate != nil {
		if n, err := h.evaluator.EvaluateLead(r.Context(), *created); err != nil {
			h.logger.Warn("payment evaluation failed", "lead_id", created.ID, "error", err)
		} else if n != nil {
			h.logger.Info("payment notification on create", "lead_id", created.ID, "message", n.Message)
		}
	}

	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"lead":    created,
		"message": "Lead created successfully",
	})
}

// ListLeads handles GET /api/leads.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		h.logger.Error("list leads failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "LIST_FAILED", "Failed to fetch leads")
		return
	}
	if len(leads) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NO_LEADS", "No leads found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, leads)
}

// ListLeadsByBDA handles GET /api/leads/bda?bdaName=....
func (h *Handler) ListLeadsByBDA(w http.ResponseWriter, r *http.Request) {
	bdaName := r.URL.Query().Get("bdaName")
	if bdaName == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAM", "bdaName query parameter is required")
		return
	}
	leads, err := h.leads.ListByBDA(r.Context(), bdaName)
	if err != nil {
		h.logger.Error("list leads by bda failed", "bda", bdaName, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "LIST_FAILED", "Failed to fetch leads")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, leads)
}

// GetLead handles GET /api/leads/{id}.
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Lead id must be a UUID")
		return
	}
	l, err := h.leads.GetByID(r.Context(), id)
	if err != nil {
		if err == lead.ErrNotFound {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		h.logger.Error("get lead failed", "lead_id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "GET_FAILED", "Failed to fetch lead")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, l)
}

// UpdateLead handles PUT /api/leads/{id}. The payment-due evaluation runs
// after the update commits; its failure is logged and swallowed.
func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Lead id must be a UUID")
		return
	}

	var l lead.Lead
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}
	l.ID = id

	if msg := validateLead(&l); msg != "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}

	updated, err := h.leads.Update(r.Context(), &l)
	if err != nil {
		if err == lead.ErrNotFound {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		h.logger.Error("update lead failed", "lead_id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update lead")
		return
	}

	if _, err := h.evaluator.EvaluateLead(r.Context(), *updated); err != nil {
		h.logger.Warn("payment evaluation failed", "lead_id", updated.ID, "error", err)
	}

	respond.WriteJSONObject(w, http.StatusOK, updated)
}

// validateLead enforces the intake form's required fields. Returns an empty
// string when the lead is acceptable.
func validateLead(l *lead.Lead) string {
	required := []struct {
		field string
		value string
	}{
		{"contactNumber", l.ContactNumber},
		{"email", l.Email},
		{"bdaName", l.BDAName},
		{"companyName", l.CompanyName},
		{"clientName", l.ClientName},
		{"clientEmail", l.ClientEmail},
		{"clientDesignation", l.ClientDesignation},
		{"companyOffering", l.CompanyOffering},
		{"servicePromisedByBDA", l.ServicePromisedByBDA},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Sprintf("%s is required.", f.field)
		}
	}
	if len(l.ServicesRequested) == 0 {
		return "servicesRequested is required."
	}
	if l.TotalServiceFeesCharged <= 0 {
		return "totalServiceFeesCharged is required."
	}
	if !contactNumberRe.MatchString(l.ContactNumber) {
		return "Contact number must be exactly 10 digits."
	}
	if !l.PaymentDone.Valid() {
		return "paymentDone must be one of: Full In Advance, Partial Payment, Not Done."
	}
	if l.Packages != nil && *l.Packages != "" && (l.PackageType == nil || *l.PackageType == "") {
		return "Package type is required when a package is selected."
	}
	return ""
}
