package get_features

import "github.com/m04kA/SMC-RentalBookingService/internal/domain"

// FeatureCatalog каталог дополнительных опций аренды с ценами
type FeatureCatalog interface {
	Items() []domain.Feature
}
