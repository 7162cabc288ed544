package pricing

import (
	"math"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// Quote расчет стоимости аренды
type Quote struct {
	DurationHours int
	Days          int // полные сутки для отображения "N day(s), M hour(s)"
	Hours         int
	BilledUnits   int // количество оплачиваемых единиц (суток или часов)
	PerDay        bool
	BasePrice     float64
	FeaturesPrice float64
	Total         float64
	Features      []FeatureCharge
}

// FeatureCharge вклад одной опции в стоимость
type FeatureCharge struct {
	Label     string
	UnitPrice float64
	Amount    float64
	Known     bool
}

// ComputeDurationHours длительность поездки в полных часах, не бывает отрицательной
func ComputeDurationHours(r domain.TripRange) int {
	return r.DurationHours()
}

// ComputeQuote тарифицирует базовую цену и выбранные опции
// От 24 часов считается посуточно (сутки округляются вверх), иначе почасово
// Опции, которых нет в каталоге, дают нулевой вклад
func ComputeQuote(
	durationHours int,
	pricePerHour float64,
	pricePerDay float64,
	selected []string,
	catalog *domain.FeatureCatalog,
) Quote {
	if durationHours < 0 {
		durationHours = 0
	}

	q := Quote{
		DurationHours: durationHours,
		Days:          durationHours / domain.HoursPerDay,
		Hours:         durationHours % domain.HoursPerDay,
		Features:      make([]FeatureCharge, 0, len(selected)),
	}

	if durationHours >= domain.HoursPerDay {
		q.PerDay = true
		q.BilledUnits = int(math.Ceil(float64(durationHours) / domain.HoursPerDay))
		q.BasePrice = float64(q.BilledUnits) * nonNegative(pricePerDay)
	} else {
		q.BilledUnits = durationHours
		q.BasePrice = float64(q.BilledUnits) * nonNegative(pricePerHour)
	}

	for _, label := range selected {
		charge := FeatureCharge{Label: label}
		if catalog != nil {
			charge.UnitPrice, charge.Known = catalog.Price(label)
		}
		charge.Amount = charge.UnitPrice * float64(q.BilledUnits)
		q.FeaturesPrice += charge.Amount
		q.Features = append(q.Features, charge)
	}

	q.Total = q.BasePrice + q.FeaturesPrice
	return q
}

// QuoteFor расчет для автомобиля и диапазона поездки
func QuoteFor(r domain.TripRange, car *domain.Car, selected []string, catalog *domain.FeatureCatalog) Quote {
	if car == nil {
		return ComputeQuote(ComputeDurationHours(r), 0, 0, selected, catalog)
	}
	return ComputeQuote(ComputeDurationHours(r), car.PricePerHour, car.PricePerDay, selected, catalog)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
