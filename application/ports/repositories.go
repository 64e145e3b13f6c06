// Package ports defines the interfaces between the application layer and
// the infrastructure adapters.
package ports

import (
	"context"
	"time"

	"reservation-backend/domain/messaging"
	"reservation-backend/domain/reservation"
)

// ReservationRepository owns the shop-reservation table
type ReservationRepository interface {
	// Put writes a full record, deriving the TTL from reservedDay.
	Put(ctx context.Context, shopID int, reservedDay, reservedYearMonth string,
		reservedInfo []reservation.SlotReservation, totalReservedNumber int,
		vacancyFlag reservation.VacancyFlag) error

	// Update rewrites only the mutable fields plus updatedTime.
	Update(ctx context.Context, shopID int, reservedDay string,
		reservedInfo []reservation.SlotReservation, totalReservedNumber int,
		vacancyFlag reservation.VacancyFlag) error

	// Get returns nil without error when the record does not exist.
	Get(ctx context.Context, shopID int, reservedDay string) (*reservation.DayReservation, error)

	// QueryByShopAndMonth returns the month's records in store order.
	QueryByShopAndMonth(ctx context.Context, shopID int, reservedYearMonth string) ([]reservation.DayReservation, error)
}

// ChannelTokenRepository owns the channel-credential table
type ChannelTokenRepository interface {
	Get(ctx context.Context, channelID string) (*messaging.ChannelToken, error)
	Update(ctx context.Context, channelID, accessToken string, limitDate time.Time) error
	Scan(ctx context.Context) ([]messaging.ChannelToken, error)
}

// RemindMessageRepository owns the reminder-message table
type RemindMessageRepository interface {
	Put(ctx context.Context, msg messaging.RemindMessage) error
	QueryByRemindDate(ctx context.Context, date string) ([]messaging.RemindMessage, error)
}

// PushClient talks to the messaging provider's HTTP API
type PushClient interface {
	// IssueToken exchanges channel credentials for a short-term access token.
	IssueToken(ctx context.Context, channelID, channelSecret string) (string, error)

	// PushMessage delivers one text message to one recipient.
	PushMessage(ctx context.Context, accessToken, userID, messageBody string) error
}

// EventPublisher emits domain events to the event bus
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, detail interface{}) error
}

// MetricsPublisher records batch outcomes
type MetricsPublisher interface {
	RecordBatchResult(ctx context.Context, job string, processed, failed int) error
}
