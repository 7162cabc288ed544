package search_cars

import (
	"context"

	searchCars "github.com/m04kA/SMC-RentalBookingService/internal/usecase/search_cars"
)

// SearchCarsUseCase поиск автомобилей с оценкой стоимости на период поездки
type SearchCarsUseCase interface {
	Execute(ctx context.Context, req *searchCars.Request) (*searchCars.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
