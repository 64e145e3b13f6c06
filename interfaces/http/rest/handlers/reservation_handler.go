// Package handlers implements the REST endpoints of the mini-app API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"reservation-backend/application/services"
	"reservation-backend/domain/reservation"
	"reservation-backend/pkg/common"
	"reservation-backend/pkg/paramcheck"
	"reservation-backend/pkg/utils"
)

// ReservationHandler serves the booking endpoints
type ReservationHandler struct {
	service *services.ReservationService
	logger  *zap.Logger
}

// NewReservationHandler creates a reservation handler
func NewReservationHandler(service *services.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		logger:  logger,
	}
}

type slotPayload struct {
	ReservedTime   string `json:"reservedTime" validate:"required"`
	ReservedNumber int    `json:"reservedNumber" validate:"min=0"`
}

type upsertReservationRequest struct {
	ReservedInfo        []slotPayload `json:"reservedInfo" validate:"dive"`
	TotalReservedNumber int           `json:"totalReservedNumber" validate:"min=0"`
	VacancyFlag         int           `json:"vacancyFlag" validate:"oneof=0 1 2"`
}

func shopIDParam(r *http.Request) (int, string) {
	raw := chi.URLParam(r, "shopID")
	if msg := paramcheck.Int(raw, "shopId"); msg != "" {
		return 0, msg
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "integer type error: shopId"
	}
	return id, ""
}

// GetDay handles GET /shops/{shopID}/reservations/{day}
func (h *ReservationHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	shopID, msg := shopIDParam(r)
	if msg != "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", msg)
		return
	}
	day := chi.URLParam(r, "day")

	record, err := h.service.GetDay(r.Context(), shopID, day)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, record)
}

// UpsertDay handles POST /shops/{shopID}/reservations/{day}
func (h *ReservationHandler) UpsertDay(w http.ResponseWriter, r *http.Request) {
	shopID, msg := shopIDParam(r)
	if msg != "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", msg)
		return
	}
	day := chi.URLParam(r, "day")

	var req upsertReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	info := make([]reservation.SlotReservation, 0, len(req.ReservedInfo))
	for _, slot := range req.ReservedInfo {
		info = append(info, reservation.SlotReservation{
			ReservedTime:   slot.ReservedTime,
			ReservedNumber: slot.ReservedNumber,
		})
	}

	record, err := h.service.UpsertDay(r.Context(), shopID, day, services.BookingInput{
		ReservedInfo:        info,
		TotalReservedNumber: req.TotalReservedNumber,
		VacancyFlag:         reservation.VacancyFlag(req.VacancyFlag),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	userID, _ := common.UserIDFrom(r.Context())
	h.logger.Info("Reservation upserted",
		zap.Int("shopId", shopID),
		zap.String("reservedDay", day),
		zap.String("userId", userID),
	)
	common.RespondJSON(w, http.StatusOK, record)
}

// ListMonth handles GET /shops/{shopID}/reservations?month=YYYY-MM
func (h *ReservationHandler) ListMonth(w http.ResponseWriter, r *http.Request) {
	shopID, msg := shopIDParam(r)
	if msg != "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", msg)
		return
	}
	month := r.URL.Query().Get("month")

	records, err := h.service.ListMonth(r.Context(), shopID, month)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, records)
}
