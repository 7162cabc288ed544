package tripsession

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

type featureRecord struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type qrAckRecord struct {
	TransactionRef string    `json:"transactionRef"`
	Amount         float64   `json:"amount"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
}

// sessionRecord представление сессии в Redis
type sessionRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	TripStart   time.Time       `json:"tripStart"`
	TripEnd     time.Time       `json:"tripEnd"`
	Origin      string          `json:"origin,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Distance    string          `json:"distance,omitempty"`
	Duration    string          `json:"duration,omitempty"`
	Features    []featureRecord `json:"features"`
	QRAck       *qrAckRecord    `json:"qrAck,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func fromDomain(s *domain.TripSession) *sessionRecord {
	items := s.Features.Items()
	features := make([]featureRecord, 0, len(items))
	for _, f := range items {
		features = append(features, featureRecord{Label: f.Label, Price: f.Price})
	}

	rec := &sessionRecord{
		ID:          s.ID,
		UserID:      s.UserID,
		TripStart:   s.Trip.Start,
		TripEnd:     s.Trip.End,
		Origin:      s.Destination.Origin,
		Destination: s.Destination.Destination,
		Distance:    s.Destination.Distance,
		Duration:    s.Destination.Duration,
		Features:    features,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.QRAck != nil {
		rec.QRAck = &qrAckRecord{
			TransactionRef: s.QRAck.TransactionRef,
			Amount:         s.QRAck.Amount,
			AcknowledgedAt: s.QRAck.AcknowledgedAt,
		}
	}

	return rec
}

func (r *sessionRecord) toDomain() *domain.TripSession {
	features := make([]domain.Feature, 0, len(r.Features))
	for _, f := range r.Features {
		features = append(features, domain.Feature{Label: f.Label, Price: f.Price})
	}

	s := &domain.TripSession{
		ID:     r.ID,
		UserID: r.UserID,
		Trip:   domain.TripRange{Start: r.TripStart, End: r.TripEnd},
		Destination: domain.DestinationInfo{
			Origin:      r.Origin,
			Destination: r.Destination,
			Distance:    r.Distance,
			Duration:    r.Duration,
		},
		Features:  domain.NewFeatureSelection(features...),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.QRAck != nil {
		s.QRAck = &domain.QRAcknowledgment{
			TransactionRef: r.QRAck.TransactionRef,
			Amount:         r.QRAck.Amount,
			AcknowledgedAt: r.QRAck.AcknowledgedAt,
		}
	}

	return s
}
