package get_features

import (
	"net/http"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

type Handler struct {
	catalog FeatureCatalog
}

func NewHandler(catalog FeatureCatalog) *Handler {
	return &Handler{catalog: catalog}
}

// Handle GET /api/v1/features
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainFeatures(h.catalog.Items()))
}
