package domain

// Car автомобиль из удаленного сервиса автомобилей (только чтение)
type Car struct {
	ID           string
	Name         string
	Model        string
	Year         string
	CarType      string
	Color        string
	Description  string
	PricePerHour float64
	PricePerDay  float64
	Features     []string
	Images       []string
	Status       string
	IsDeleted    bool
}

// CarFilter параметры поиска автомобилей
type CarFilter struct {
	CarType    string
	CarBrand   string
	PriceRange string
	Trip       *TripRange
	Page       int
}
