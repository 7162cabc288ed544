package domain

// DestinationInfo маршрут поездки
type DestinationInfo struct {
	Origin      string
	Destination string
	Distance    string
	Duration    string
}

// Merge частичное обновление: перезаписываются только непустые поля
func (d DestinationInfo) Merge(update DestinationInfo) DestinationInfo {
	if update.Origin != "" {
		d.Origin = update.Origin
	}
	if update.Destination != "" {
		d.Destination = update.Destination
	}
	if update.Distance != "" {
		d.Distance = update.Distance
	}
	if update.Duration != "" {
		d.Duration = update.Duration
	}
	return d
}
