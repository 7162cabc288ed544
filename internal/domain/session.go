package domain

import "time"

// TripSession состояние незавершенного выбора поездки пользователя
// Единственный владелец: пользователь UserID, запись последнего выигрывает
type TripSession struct {
	ID          string
	UserID      string
	Trip        TripRange
	Destination DestinationInfo
	Features    FeatureSelection
	QRAck       *QRAcknowledgment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QRAcknowledgment подтвержденная шлюзом оплата по QR перед созданием бронирования
type QRAcknowledgment struct {
	TransactionRef string
	Amount         float64
	AcknowledgedAt time.Time
}

// NewTripSession новая сессия с диапазоном по умолчанию
func NewTripSession(id, userID string, now time.Time) *TripSession {
	return &TripSession{
		ID:        id,
		UserID:    userID,
		Trip:      DefaultTripRange(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
