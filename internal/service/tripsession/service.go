package tripsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/tripsession"
	carClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/carservice"
	gatewayClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

// Service сервис для работы с сессией выбора поездки
// Сессия заменяет глобальное состояние клиента: диапазон дат, маршрут, опции и подтверждение QR оплаты
type Service struct {
	repo         SessionRepository
	carClient    CarServiceClient
	gateway      PaymentGatewayClient
	catalog      *domain.FeatureCatalog
	timeProvider TimeProvider
	idGenerator  IDGenerator
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	repo SessionRepository,
	carClient CarServiceClient,
	gateway PaymentGatewayClient,
	catalog *domain.FeatureCatalog,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		carClient:    carClient,
		gateway:      gateway,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		idGenerator:  UUIDGenerator{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithIDGenerator подменяет генератор идентификаторов (для тестов)
func (s *Service) WithIDGenerator(g IDGenerator) *Service {
	s.idGenerator = g
	return s
}

// Create создает сессию с диапазоном по умолчанию (сейчас + 24 часа)
func (s *Service) Create(ctx context.Context, userID string) (*models.SessionResponse, error) {
	session := domain.NewTripSession(s.idGenerator.NewID(), userID, s.timeProvider.Now())

	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Error("Create: failed to save session for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Create - save session: %v", ErrInternal, err)
	}

	s.logger.Info("Create: session id=%s created for user=%s", session.ID, userID)
	return models.FromDomainSession(session), nil
}

// Get получает сессию, доступную только владельцу
func (s *Service) Get(ctx context.Context, id, userID string) (*models.SessionResponse, error) {
	session, err := s.load(ctx, "Get", id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSession(session), nil
}

// Delete удаляет сессию
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.load(ctx, "Delete", id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		s.logger.Error("Delete: failed to delete session id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - delete session: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: session id=%s deleted", id)
	return nil
}

// SetTripTime применяет выбор дат
// Две даты нормализуются (меняются местами при обратном порядке), одна дата заменяет только начало
// Начало не может быть раньше сегодняшнего дня
func (s *Service) SetTripTime(ctx context.Context, id, userID string, req models.SetTripTimeRequest) (*models.SessionResponse, error) {
	session, err := s.load(ctx, "SetTripTime", id, userID)
	if err != nil {
		return nil, err
	}

	trip, err := domain.UpdateTripRange(session.Trip, req.Dates)
	if err != nil {
		s.logger.Warn("SetTripTime: invalid dates for session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	if err := domain.ValidateTripRange(trip, now); err != nil {
		s.logger.Warn("SetTripTime: trip range rejected for session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	session.Trip = trip
	if err := s.save(ctx, "SetTripTime", session, now); err != nil {
		return nil, err
	}

	s.logger.Info("SetTripTime: session id=%s, start=%s, end=%s, hours=%d",
		id, trip.Start.Format(domain.DateTimeFormat), trip.End.Format(domain.DateTimeFormat), trip.DurationHours())
	return models.FromDomainSession(session), nil
}

// SetDestination частично обновляет маршрут: пустые поля не перезаписывают текущие значения
func (s *Service) SetDestination(ctx context.Context, id, userID string, req models.SetDestinationRequest) (*models.SessionResponse, error) {
	session, err := s.load(ctx, "SetDestination", id, userID)
	if err != nil {
		return nil, err
	}

	update := req.ToDomain()
	if len(update.Origin) > domain.MaxLocationLength || len(update.Destination) > domain.MaxLocationLength {
		s.logger.Warn("SetDestination: location too long for session id=%s", id)
		return nil, fmt.Errorf("%w: location must be at most %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}

	session.Destination = session.Destination.Merge(update)
	if err := s.save(ctx, "SetDestination", session, s.timeProvider.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("SetDestination: session id=%s, origin=%q, destination=%q", id, session.Destination.Origin, session.Destination.Destination)
	return models.FromDomainSession(session), nil
}

// ClearDestination сбрасывает маршрут
func (s *Service) ClearDestination(ctx context.Context, id, userID string) (*models.SessionResponse, error) {
	session, err := s.load(ctx, "ClearDestination", id, userID)
	if err != nil {
		return nil, err
	}

	session.Destination = domain.DestinationInfo{}
	if err := s.save(ctx, "ClearDestination", session, s.timeProvider.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("ClearDestination: session id=%s", id)
	return models.FromDomainSession(session), nil
}

// ToggleFeature добавляет опцию из каталога или убирает уже выбранную
func (s *Service) ToggleFeature(ctx context.Context, id, userID, label string) (*models.SessionResponse, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: feature label is required", ErrInvalidInput)
	}

	session, err := s.load(ctx, "ToggleFeature", id, userID)
	if err != nil {
		return nil, err
	}

	feature, ok := s.catalog.Get(label)
	if !ok {
		s.logger.Warn("ToggleFeature: unknown feature=%q for session id=%s", label, id)
		return nil, ErrUnknownFeature
	}

	session.Features = session.Features.Toggle(feature)
	if err := s.save(ctx, "ToggleFeature", session, s.timeProvider.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("ToggleFeature: session id=%s, feature=%q, selected=%t", id, label, session.Features.Contains(label))
	return models.FromDomainSession(session), nil
}

// AcknowledgeQRPayment проверяет QR транзакцию у платежного шлюза
// Подтверждение записывается в сессию только для успешной транзакции
func (s *Service) AcknowledgeQRPayment(ctx context.Context, id, userID, transactionRef string) (*models.SessionResponse, error) {
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return nil, fmt.Errorf("%w: transaction reference is required", ErrInvalidInput)
	}

	session, err := s.load(ctx, "AcknowledgeQRPayment", id, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.gateway.GetTransaction(ctx, transactionRef)
	if err != nil {
		if errors.Is(err, gatewayClient.ErrTransactionNotFound) {
			s.logger.Warn("AcknowledgeQRPayment: transaction=%s not found, session id=%s", transactionRef, id)
			return nil, ErrTransactionNotFound
		}
		s.logger.Error("AcknowledgeQRPayment: gateway error for transaction=%s: %v", transactionRef, err)
		return nil, fmt.Errorf("%w: AcknowledgeQRPayment - gateway: %v", ErrInternal, err)
	}

	if status := tx.DomainStatus(); status != domain.TransactionSucceeded {
		s.logger.Warn("AcknowledgeQRPayment: transaction=%s has status=%s, session id=%s", transactionRef, status, id)
		return nil, fmt.Errorf("%w: transaction status is %s", ErrPaymentNotCompleted, status)
	}

	now := s.timeProvider.Now()
	session.QRAck = &domain.QRAcknowledgment{
		TransactionRef: transactionRef,
		Amount:         tx.Amount,
		AcknowledgedAt: now,
	}
	if err := s.save(ctx, "AcknowledgeQRPayment", session, now); err != nil {
		return nil, err
	}

	s.logger.Info("AcknowledgeQRPayment: session id=%s, transaction=%s, amount=%.2f", id, transactionRef, tx.Amount)
	return models.FromDomainSession(session), nil
}

// ClearQRAcknowledgment сбрасывает подтверждение QR оплаты
func (s *Service) ClearQRAcknowledgment(ctx context.Context, id, userID string) (*models.SessionResponse, error) {
	session, err := s.load(ctx, "ClearQRAcknowledgment", id, userID)
	if err != nil {
		return nil, err
	}

	session.QRAck = nil
	if err := s.save(ctx, "ClearQRAcknowledgment", session, s.timeProvider.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("ClearQRAcknowledgment: session id=%s", id)
	return models.FromDomainSession(session), nil
}

// Quote рассчитывает стоимость аренды автомобиля для диапазона и опций сессии
func (s *Service) Quote(ctx context.Context, id, userID, carID string) (*models.QuoteResponse, error) {
	carID = strings.TrimSpace(carID)
	if carID == "" {
		return nil, fmt.Errorf("%w: car id is required", ErrInvalidInput)
	}

	session, err := s.load(ctx, "Quote", id, userID)
	if err != nil {
		return nil, err
	}

	car, err := s.carClient.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, carClient.ErrCarNotFound) {
			s.logger.Warn("Quote: car id=%s not found", carID)
			return nil, ErrCarNotFound
		}
		if domain.IsRemoteError(err) {
			return nil, err
		}
		s.logger.Error("Quote: failed to get car id=%s: %v", carID, err)
		return nil, fmt.Errorf("%w: Quote - get car: %v", ErrInternal, err)
	}

	quote := pricing.QuoteFor(session.Trip, car, session.Features.Labels(), s.catalog)

	s.logger.Info("Quote: session id=%s, car=%s, hours=%d, total=%.2f", id, carID, quote.DurationHours, quote.Total)
	return models.FromQuote(car, quote), nil
}

// load получает сессию и проверяет права доступа
func (s *Service) load(ctx context.Context, op, id, userID string) (*domain.TripSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%s not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if session.UserID != userID {
		s.logger.Warn("%s: access denied for user=%s to session id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}

	return session, nil
}

func (s *Service) save(ctx context.Context, op string, session *domain.TripSession, now time.Time) error {
	session.UpdatedAt = now
	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Error("%s: failed to save session id=%s: %v", op, session.ID, err)
		return fmt.Errorf("%w: %s - save session: %v", ErrInternal, op, err)
	}
	return nil
}
