package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
	"reservation-backend/domain/reservation"
	appErrors "reservation-backend/pkg/errors"
	"reservation-backend/pkg/utils"
)

// reservedYearMonthIndex is the GSI keyed (shopId, reservedYearMonth)
const reservedYearMonthIndex = "shopId-reservedYearMonth-index"

// ReservationRepository implements ports.ReservationRepository on the
// shop-reservation table.
type ReservationRepository struct {
	table  *Table
	logger *zap.Logger
}

// NewReservationRepository creates a repository bound to tableName
func NewReservationRepository(client API, tableName string, logger *zap.Logger) ports.ReservationRepository {
	return &ReservationRepository{
		table:  NewTable(client, tableName, logger),
		logger: logger,
	}
}

func reservationKey(shopID int, reservedDay string) Item {
	return Item{
		"shopId":      &types.AttributeValueMemberN{Value: strconv.Itoa(shopID)},
		"reservedDay": &types.AttributeValueMemberS{Value: reservedDay},
	}
}

// Put writes a full record. The TTL attribute is derived from reservedDay
// so the store drops the item once the day is well past.
func (r *ReservationRepository) Put(ctx context.Context, shopID int, reservedDay, reservedYearMonth string,
	reservedInfo []reservation.SlotReservation, totalReservedNumber int, vacancyFlag reservation.VacancyFlag) error {

	day, err := utils.ParseDate(reservedDay)
	if err != nil {
		return appErrors.NewValidationError(fmt.Sprintf("invalid reservation day: %s", reservedDay))
	}

	now := utils.Timestamp(utils.NowJST())
	record := reservation.DayReservation{
		ShopID:              shopID,
		ReservedDay:         reservedDay,
		ReservedYearMonth:   reservedYearMonth,
		ReservedInfo:        reservedInfo,
		TotalReservedNumber: totalReservedNumber,
		VacancyFlag:         vacancyFlag,
		ExpirationDate:      utils.ExpirationTime(day),
		CreatedTime:         now,
		UpdatedTime:         now,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return appErrors.NewInternalError("failed to marshal reservation", err)
	}

	return r.table.Put(ctx, item)
}

// Update rewrites the mutable fields plus updatedTime
func (r *ReservationRepository) Update(ctx context.Context, shopID int, reservedDay string,
	reservedInfo []reservation.SlotReservation, totalReservedNumber int, vacancyFlag reservation.VacancyFlag) error {

	infoAttr, err := attributevalue.Marshal(reservedInfo)
	if err != nil {
		return appErrors.NewInternalError("failed to marshal reservation detail", err)
	}

	expr := "SET reservedInfo = :reservedInfo, " +
		"totalReservedNumber = :totalReservedNumber, " +
		"vacancyFlag = :vacancyFlag, " +
		"updatedTime = :updatedTime"
	values := Item{
		":reservedInfo":        infoAttr,
		":totalReservedNumber": &types.AttributeValueMemberN{Value: strconv.Itoa(totalReservedNumber)},
		":vacancyFlag":         &types.AttributeValueMemberN{Value: strconv.Itoa(int(vacancyFlag))},
		":updatedTime":         &types.AttributeValueMemberS{Value: utils.Timestamp(utils.NowJST())},
	}

	_, err = r.table.Update(ctx, reservationKey(shopID, reservedDay), expr, values, types.ReturnValueUpdatedNew)
	return err
}

// Get returns nil without error when no record exists for the day
func (r *ReservationRepository) Get(ctx context.Context, shopID int, reservedDay string) (*reservation.DayReservation, error) {
	item, err := r.table.Get(ctx, reservationKey(shopID, reservedDay))
	if err != nil {
		return nil, err
	}
	if len(item) == 0 {
		return nil, nil
	}

	var record reservation.DayReservation
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, appErrors.NewInternalError("failed to unmarshal reservation", err)
	}
	return &record, nil
}

// QueryByShopAndMonth lists the month's records from the year-month index
func (r *ReservationRepository) QueryByShopAndMonth(ctx context.Context, shopID int, reservedYearMonth string) ([]reservation.DayReservation, error) {
	keyExpr := "shopId = :shopId AND reservedYearMonth = :reservedYearMonth"
	values := Item{
		":shopId":            &types.AttributeValueMemberN{Value: strconv.Itoa(shopID)},
		":reservedYearMonth": &types.AttributeValueMemberS{Value: reservedYearMonth},
	}

	items, err := r.table.QueryIndex(ctx, reservedYearMonthIndex, keyExpr, values)
	if err != nil {
		return nil, err
	}

	records := make([]reservation.DayReservation, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, appErrors.NewInternalError("failed to unmarshal reservations", err)
	}
	return records, nil
}
