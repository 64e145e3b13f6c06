// Package services holds the application services behind the REST surface.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
	"reservation-backend/domain/messaging"
	"reservation-backend/domain/reservation"
	appErrors "reservation-backend/pkg/errors"
	"reservation-backend/pkg/paramcheck"
	"reservation-backend/pkg/utils"
)

// ReservationUpdatedEvent is the detail published when a day's booking
// state changes.
const ReservationUpdatedEvent = "reservation.updated"

// ReservationService implements the booking operations of the REST API
type ReservationService struct {
	reservationRepo ports.ReservationRepository
	remindRepo      ports.RemindMessageRepository
	events          ports.EventPublisher
	logger          *zap.Logger
}

// NewReservationService creates the booking service
func NewReservationService(
	reservationRepo ports.ReservationRepository,
	remindRepo ports.RemindMessageRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		remindRepo:      remindRepo,
		events:          events,
		logger:          logger,
	}
}

// BookingInput is the mutable state of one shop/day record
type BookingInput struct {
	ReservedInfo        []reservation.SlotReservation
	TotalReservedNumber int
	VacancyFlag         reservation.VacancyFlag
}

type reservationUpdatedDetail struct {
	ShopID              int                     `json:"shopId"`
	ReservedDay         string                  `json:"reservedDay"`
	TotalReservedNumber int                     `json:"totalReservedNumber"`
	VacancyFlag         reservation.VacancyFlag `json:"vacancyFlag"`
}

// UpsertDay creates the day's record on first booking and updates it on
// every subsequent change.
func (s *ReservationService) UpsertDay(ctx context.Context, shopID int, reservedDay string, input BookingInput) (*reservation.DayReservation, error) {
	var msgs []string
	// The stored key and the index month are both derived from the day, so
	// only the canonical YYYY-MM-DD form is accepted here.
	day, err := utils.ParseDate(reservedDay)
	if err != nil {
		msgs = append(msgs, fmt.Sprintf("year-month-day format error: reservedDay(%s)", reservedDay))
	}
	if !input.VacancyFlag.Valid() {
		msgs = append(msgs, "vacancy flag out of range: vacancyFlag")
	}
	if len(msgs) > 0 {
		return nil, appErrors.NewValidationError(strings.Join(msgs, "; "))
	}

	existing, err := s.reservationRepo.Get(ctx, shopID, reservedDay)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		yearMonth := day.Format(utils.MonthLayout)
		if err := s.reservationRepo.Put(ctx, shopID, reservedDay, yearMonth,
			input.ReservedInfo, input.TotalReservedNumber, input.VacancyFlag); err != nil {
			return nil, err
		}
	} else {
		if err := s.reservationRepo.Update(ctx, shopID, reservedDay,
			input.ReservedInfo, input.TotalReservedNumber, input.VacancyFlag); err != nil {
			return nil, err
		}
	}

	if s.events != nil {
		detail := reservationUpdatedDetail{
			ShopID:              shopID,
			ReservedDay:         reservedDay,
			TotalReservedNumber: input.TotalReservedNumber,
			VacancyFlag:         input.VacancyFlag,
		}
		// The booking itself already succeeded; a publish failure only
		// loses the notification.
		if err := s.events.Publish(ctx, ReservationUpdatedEvent, detail); err != nil {
			s.logger.Warn("Failed to publish reservation event",
				zap.Int("shopId", shopID),
				zap.String("reservedDay", reservedDay),
				zap.Error(err),
			)
		}
	}

	return s.reservationRepo.Get(ctx, shopID, reservedDay)
}

// GetDay returns one shop/day record
func (s *ReservationService) GetDay(ctx context.Context, shopID int, reservedDay string) (*reservation.DayReservation, error) {
	if _, err := utils.ParseDate(reservedDay); err != nil {
		return nil, appErrors.NewValidationError(
			fmt.Sprintf("year-month-day format error: reservedDay(%s)", reservedDay))
	}

	record, err := s.reservationRepo.Get(ctx, shopID, reservedDay)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, appErrors.NewNotFoundError("reservation")
	}
	return record, nil
}

// ListMonth returns the month's records in store order
func (s *ReservationService) ListMonth(ctx context.Context, shopID int, reservedYearMonth string) ([]reservation.DayReservation, error) {
	if _, err := utils.ParseYearMonth(reservedYearMonth); err != nil {
		return nil, appErrors.NewValidationError(
			fmt.Sprintf("year-month format error: month(%s)", reservedYearMonth))
	}
	return s.reservationRepo.QueryByShopAndMonth(ctx, shopID, reservedYearMonth)
}

// RegisterReminder stores a reminder message for the dispatch batch
func (s *ReservationService) RegisterReminder(ctx context.Context, channelID, userID, messageBody, remindDate string) (*messaging.RemindMessage, error) {
	var msgs []string
	for field, value := range map[string]string{
		"channelId":   channelID,
		"userId":      userID,
		"messageBody": messageBody,
	} {
		if msg := paramcheck.Required(value, field); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	// Dispatch queries by the canonical YYYY-MM-DD date, so only that form
	// may be stored.
	if _, err := utils.ParseDate(remindDate); err != nil {
		msgs = append(msgs, fmt.Sprintf("year-month-day format error: remindDate(%s)", remindDate))
	}
	if len(msgs) > 0 {
		return nil, appErrors.NewValidationError(strings.Join(msgs, "; "))
	}

	now := utils.Timestamp(utils.NowJST())
	msg := messaging.RemindMessage{
		ID:         uuid.NewString(),
		RemindDate: remindDate,
		MessageInfo: messaging.MessageInfo{
			ChannelID:   channelID,
			MessageBody: messageBody,
			UserID:      userID,
		},
		CreatedTime: now,
		UpdatedTime: now,
	}

	if err := s.remindRepo.Put(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("Reminder registered",
		zap.String("messageId", msg.ID),
		zap.String("remindDate", remindDate),
	)
	return &msg, nil
}
