package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reservation-backend/application/services"
	"reservation-backend/domain/messaging"
	"reservation-backend/domain/reservation"
	"reservation-backend/infrastructure/config"
)

type stubReservationRepo struct {
	records map[string]*reservation.DayReservation
}

func dayKey(shopID int, day string) string {
	b, _ := json.Marshal([]interface{}{shopID, day})
	return string(b)
}

func (r *stubReservationRepo) Put(ctx context.Context, shopID int, reservedDay, reservedYearMonth string,
	reservedInfo []reservation.SlotReservation, totalReservedNumber int,
	vacancyFlag reservation.VacancyFlag) error {
	r.records[dayKey(shopID, reservedDay)] = &reservation.DayReservation{
		ShopID:              shopID,
		ReservedDay:         reservedDay,
		ReservedYearMonth:   reservedYearMonth,
		ReservedInfo:        reservedInfo,
		TotalReservedNumber: totalReservedNumber,
		VacancyFlag:         vacancyFlag,
	}
	return nil
}

func (r *stubReservationRepo) Update(ctx context.Context, shopID int, reservedDay string,
	reservedInfo []reservation.SlotReservation, totalReservedNumber int,
	vacancyFlag reservation.VacancyFlag) error {
	record := r.records[dayKey(shopID, reservedDay)]
	record.ReservedInfo = reservedInfo
	record.TotalReservedNumber = totalReservedNumber
	record.VacancyFlag = vacancyFlag
	return nil
}

func (r *stubReservationRepo) Get(ctx context.Context, shopID int, reservedDay string) (*reservation.DayReservation, error) {
	return r.records[dayKey(shopID, reservedDay)], nil
}

func (r *stubReservationRepo) QueryByShopAndMonth(ctx context.Context, shopID int, reservedYearMonth string) ([]reservation.DayReservation, error) {
	var out []reservation.DayReservation
	for _, record := range r.records {
		if record.ShopID == shopID && record.ReservedYearMonth == reservedYearMonth {
			out = append(out, *record)
		}
	}
	return out, nil
}

type stubRemindRepo struct {
	put []messaging.RemindMessage
}

func (r *stubRemindRepo) Put(ctx context.Context, msg messaging.RemindMessage) error {
	r.put = append(r.put, msg)
	return nil
}

func (r *stubRemindRepo) QueryByRemindDate(ctx context.Context, date string) ([]messaging.RemindMessage, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubReservationRepo, *stubRemindRepo) {
	t.Helper()
	reservations := &stubReservationRepo{records: map[string]*reservation.DayReservation{}}
	reminders := &stubRemindRepo{}
	service := services.NewReservationService(reservations, reminders, nil, zap.NewNop())
	cfg := &config.Config{AuthDisabled: true}
	srv := httptest.NewServer(NewRouter(cfg, service, zap.NewNop()).Setup())
	t.Cleanup(srv.Close)
	return srv, reservations, reminders
}

func TestHealthCheck(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpsertThenGetDay(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body := map[string]interface{}{
		"reservedInfo": []map[string]interface{}{
			{"reservedTime": "18:00", "reservedNumber": 2},
		},
		"totalReservedNumber": 2,
		"vacancyFlag":         1,
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/v1/shops/123/reservations/2026-09-15", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/shops/123/reservations/2026-09-15")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool                       `json:"success"`
		Data    reservation.DayReservation `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, 123, envelope.Data.ShopID)
	assert.Equal(t, 2, envelope.Data.TotalReservedNumber)
}

func TestGetDayNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/shops/123/reservations/2026-09-15")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpsertDayRejectsBadVacancyFlag(t *testing.T) {
	srv, _, _ := newTestServer(t)

	raw := []byte(`{"reservedInfo":[],"totalReservedNumber":0,"vacancyFlag":7}`)
	resp, err := http.Post(srv.URL+"/api/v1/shops/123/reservations/2026-09-15", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListMonthRequiresMonthParam(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/shops/123/reservations/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterReminder(t *testing.T) {
	srv, _, reminders := newTestServer(t)

	raw := []byte(`{"channelId":"chan-1","userId":"user-1","messageBody":"see you tomorrow","remindDate":"2026-09-14"}`)
	resp, err := http.Post(srv.URL+"/api/v1/reminders", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, reminders.put, 1)
	assert.Equal(t, "chan-1", reminders.put[0].MessageInfo.ChannelID)
	assert.NotEmpty(t, reminders.put[0].ID)
}

func TestRegisterReminderRejectsMissingFields(t *testing.T) {
	srv, _, reminders := newTestServer(t)

	raw := []byte(`{"channelId":"chan-1"}`)
	resp, err := http.Post(srv.URL+"/api/v1/reminders", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, reminders.put)
}
