package search_cars

import "time"

// Request поиск автомобилей на период поездки
// Без SessionID используется диапазон по умолчанию (сутки от текущего момента)
type Request struct {
	SessionID  string
	UserID     string
	CarType    string
	CarBrand   string
	PriceRange string // "min-max" за сутки
	Page       int
}

// CarResult автомобиль с оценкой стоимости на период поездки
type CarResult struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Model          string   `json:"model,omitempty"`
	Year           string   `json:"year,omitempty"`
	CarType        string   `json:"carType,omitempty"`
	Color          string   `json:"color,omitempty"`
	Description    string   `json:"description,omitempty"`
	PricePerHour   float64  `json:"pricePerHour"`
	PricePerDay    float64  `json:"pricePerDay"`
	Features       []string `json:"features,omitempty"`
	Images         []string `json:"images,omitempty"`
	Status         string   `json:"status,omitempty"`
	BasePrice      float64  `json:"basePrice"`
	EstimatedTotal float64  `json:"estimatedTotal"`
}

// TripWindow период, на который выполнен поиск
type TripWindow struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	DurationHours int       `json:"durationHours"`
}

// PageInfo пагинация удаленного каталога
type PageInfo struct {
	Total      int `json:"total"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Response результат поиска
type Response struct {
	Trip TripWindow  `json:"trip"`
	Cars []CarResult `json:"cars"`
	Page *PageInfo   `json:"page,omitempty"`
}
