package search_cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/tripsession"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
)

// UseCase use case поиска автомобилей на период поездки
type UseCase struct {
	sessionRepo  SessionRepository
	carClient    CarServiceClient
	catalog      *domain.FeatureCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	carClient CarServiceClient,
	catalog *domain.FeatureCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		carClient:    carClient,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет поиск автомобилей
// Оценка стоимости учитывает опции, выбранные в сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchCars: user=%s, session=%s, type=%s, brand=%s, price=%s, page=%d",
		req.UserID, req.SessionID, req.CarType, req.CarBrand, req.PriceRange, req.Page)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchCars: validation failed: %v", err)
		return nil, err
	}

	// 2. Период поездки и выбранные опции
	trip := domain.DefaultTripRange(uc.timeProvider.Now())
	var selected []string
	if strings.TrimSpace(req.SessionID) != "" {
		session, err := uc.sessionRepo.Get(ctx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("SearchCars: session id=%s not found", req.SessionID)
				return nil, ErrSessionNotFound
			}
			uc.logger.Error("SearchCars: failed to get session id=%s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}
		if session.UserID != req.UserID {
			uc.logger.Warn("SearchCars: access denied for user=%s to session id=%s", req.UserID, req.SessionID)
			return nil, ErrAccessDenied
		}
		trip = domain.NewTripRange(session.Trip.Start, session.Trip.End)
		selected = session.Features.Labels()
	}

	// 3. Каталог удаленного сервиса
	cars, meta, err := uc.carClient.ListCars(ctx, domain.CarFilter{
		CarType:    strings.TrimSpace(req.CarType),
		CarBrand:   strings.TrimSpace(req.CarBrand),
		PriceRange: strings.TrimSpace(req.PriceRange),
		Trip:       &trip,
		Page:       req.Page,
	})
	if err != nil {
		uc.logger.Error("SearchCars: failed to list cars: %v", err)
		if domain.IsRemoteError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to list cars: %v", ErrInternal, err)
	}

	// 4. Оценка стоимости на период
	resp := &Response{
		Trip: TripWindow{
			StartDate:     trip.Start,
			EndDate:       trip.End,
			DurationHours: trip.DurationHours(),
		},
		Cars: make([]CarResult, 0, len(cars)),
	}
	for _, car := range cars {
		q := pricing.QuoteFor(trip, car, selected, uc.catalog)
		resp.Cars = append(resp.Cars, toCarResult(car, q))
	}
	if meta != nil {
		resp.Page = &PageInfo{
			Total:      meta.Total,
			PageNumber: meta.PageNumber,
			PageSize:   meta.LimitDataCount,
			TotalPages: meta.TotalPage,
		}
	}

	uc.logger.Info("SearchCars: found %d cars for %d hours", len(resp.Cars), resp.Trip.DurationHours)
	return resp, nil
}

func toCarResult(car *domain.Car, q pricing.Quote) CarResult {
	return CarResult{
		ID:             car.ID,
		Name:           car.Name,
		Model:          car.Model,
		Year:           car.Year,
		CarType:        car.CarType,
		Color:          car.Color,
		Description:    car.Description,
		PricePerHour:   car.PricePerHour,
		PricePerDay:    car.PricePerDay,
		Features:       car.Features,
		Images:         car.Images,
		Status:         car.Status,
		BasePrice:      q.BasePrice,
		EstimatedTotal: q.Total,
	}
}
