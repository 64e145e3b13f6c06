// Package reservation holds the records of the shop-reservation table.
package reservation

// VacancyFlag describes how much room a shop has left on a given day
type VacancyFlag int

const (
	// VacancyNone means the day is fully booked
	VacancyNone VacancyFlag = 0
	// VacancyAvailable means the day has open slots
	VacancyAvailable VacancyFlag = 1
	// VacancyLimited means only a few slots remain
	VacancyLimited VacancyFlag = 2
)

// Valid reports whether the flag is one of the known values
func (f VacancyFlag) Valid() bool {
	return f == VacancyNone || f == VacancyAvailable || f == VacancyLimited
}

// SlotReservation is the reservation detail for one 30-minute slot
type SlotReservation struct {
	ReservedTime   string `dynamodbav:"reservedTime" json:"reservedTime"`
	ReservedNumber int    `dynamodbav:"reservedNumber" json:"reservedNumber"`
}

// DayReservation is one shop's reservation state for one day. The pair
// (ShopID, ReservedDay) uniquely identifies a record; ReservedYearMonth is
// a redundant copy of the day's month kept as a secondary-index key.
type DayReservation struct {
	ShopID              int               `dynamodbav:"shopId" json:"shopId"`
	ReservedDay         string            `dynamodbav:"reservedDay" json:"reservedDay"`
	ReservedYearMonth   string            `dynamodbav:"reservedYearMonth" json:"reservedYearMonth"`
	ReservedInfo        []SlotReservation `dynamodbav:"reservedInfo" json:"reservedInfo"`
	TotalReservedNumber int               `dynamodbav:"totalReservedNumber" json:"totalReservedNumber"`
	VacancyFlag         VacancyFlag       `dynamodbav:"vacancyFlag" json:"vacancyFlag"`
	ExpirationDate      int64             `dynamodbav:"expirationDate" json:"-"`
	CreatedTime         string            `dynamodbav:"createdTime" json:"createdTime"`
	UpdatedTime         string            `dynamodbav:"updatedTime" json:"updatedTime"`
}
