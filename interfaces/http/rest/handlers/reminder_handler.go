package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"reservation-backend/application/services"
	"reservation-backend/pkg/common"
	"reservation-backend/pkg/utils"
)

// ReminderHandler serves the reminder registration endpoint
type ReminderHandler struct {
	service *services.ReservationService
	logger  *zap.Logger
}

// NewReminderHandler creates a reminder handler
func NewReminderHandler(service *services.ReservationService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		logger:  logger,
	}
}

type registerReminderRequest struct {
	ChannelID   string `json:"channelId" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
	MessageBody string `json:"messageBody" validate:"required"`
	RemindDate  string `json:"remindDate" validate:"required,datetime=2006-01-02"`
}

// Register handles POST /reminders
func (h *ReminderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	msg, err := h.service.RegisterReminder(r.Context(), req.ChannelID, req.UserID, req.MessageBody, req.RemindDate)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, msg)
}
