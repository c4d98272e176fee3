package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandboost/leadmanager/internal/api/respond"
	"github.com/brandboost/leadmanager/internal/notifications"
)

// ListNotifications handles GET /api/notifications, newest first.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.notifs.List(r.Context())
	if err != nil {
		h.logger.Error("list notifications failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "LIST_FAILED", "Failed to fetch notifications")
		return
	}
	if list == nil {
		list = []notifications.Notification{}
	}
	respond.WriteJSONObject(w, http.StatusOK, list)
}

// MarkNotificationRead handles PATCH /api/notifications/{id}.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Notification id must be a UUID")
		return
	}
	n, err := h.notifs.MarkRead(r.Context(), id)
	if err != nil {
		if err == notifications.ErrNotFound {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		h.logger.Error("mark notification read failed", "notification_id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notification as read")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, n)
}

type createNotificationRequest struct {
	Message   string             `json:"message"`
	Type      notifications.Type `json:"type"`
	RelatedID *uuid.UUID         `json:"relatedId,omitempty"`
	DueDate   *time.Time         `json:"dueDate,omitempty"`
	Amount    *float64           `json:"amount,omitempty"`
}

// CreateNotification handles POST /api/notifications for manually filed
// alerts.
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}
	if req.Message == "" || req.Type == "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "message and type are required")
		return
	}

	n := &notifications.Notification{
		Message:   req.Message,
		Type:      req.Type,
		RelatedID: req.RelatedID,
		DueDate:   req.DueDate,
		Amount:    req.Amount,
	}
	saved, err := h.notifs.Insert(r.Context(), n)
	if err != nil {
		h.logger.Error("create notification failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create notification")
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, saved)
}

// DeleteNotification handles DELETE /api/notifications/{id}.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Notification id must be a UUID")
		return
	}
	if err := h.notifs.Delete(r.Context(), id); err != nil {
		if err == notifications.ErrNotFound {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		h.logger.Error("delete notification failed", "notification_id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete notification")
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Notification deleted successfully")
}
