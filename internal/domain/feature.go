package domain

// Feature дополнительная опция аренды из каталога
type Feature struct {
	Label string
	Price float64
}

// BookedFeature опция в сохраненном бронировании (формат удаленного API: {name, price})
type BookedFeature struct {
	Name  string
	Price float64
}

// FeatureCatalog канонический каталог дополнительных опций
// Используется и при создании, и при изменении бронирования
type FeatureCatalog struct {
	items []Feature
}

// NewFeatureCatalog создает каталог, дубликаты по label отбрасываются
func NewFeatureCatalog(items ...Feature) *FeatureCatalog {
	c := &FeatureCatalog{items: make([]Feature, 0, len(items))}
	for _, f := range items {
		if _, ok := c.Price(f.Label); ok {
			continue
		}
		c.items = append(c.items, f)
	}
	return c
}

// DefaultFeatureCatalog каталог, используемый сервисом по умолчанию
func DefaultFeatureCatalog() *FeatureCatalog {
	return NewFeatureCatalog(
		Feature{Label: "GPS Navigation", Price: 5},
		Feature{Label: "Child Seat", Price: 4},
		Feature{Label: "Mobile Holder with USB Charging", Price: 2},
		Feature{Label: "Bluetooth Connectivity", Price: 2},
		Feature{Label: "Helmet Included", Price: 3},
		Feature{Label: "Comfort Seating", Price: 4},
		Feature{Label: "Additional Driver", Price: 8},
		Feature{Label: "Full Insurance", Price: 12},
	)
}

// Price цена опции по label
func (c *FeatureCatalog) Price(label string) (float64, bool) {
	for _, f := range c.items {
		if f.Label == label {
			return f.Price, true
		}
	}
	return 0, false
}

// Get опция по label
func (c *FeatureCatalog) Get(label string) (Feature, bool) {
	for _, f := range c.items {
		if f.Label == label {
			return f, true
		}
	}
	return Feature{}, false
}

// Items копия списка опций в порядке каталога
func (c *FeatureCatalog) Items() []Feature {
	out := make([]Feature, len(c.items))
	copy(out, c.items)
	return out
}

// FeatureSelection выбранные опции, уникальные по label, в порядке добавления
type FeatureSelection struct {
	items []Feature
}

// NewFeatureSelection создает выбор из списка опций
func NewFeatureSelection(items ...Feature) FeatureSelection {
	var s FeatureSelection
	for _, f := range items {
		if !s.Contains(f.Label) {
			s.items = append(s.items, f)
		}
	}
	return s
}

// SeedFromBooking заполняет выбор из сохраненных опций бронирования (сопоставление по имени)
func SeedFromBooking(features []BookedFeature) FeatureSelection {
	items := make([]Feature, 0, len(features))
	for _, f := range features {
		items = append(items, Feature{Label: f.Name, Price: f.Price})
	}
	return NewFeatureSelection(items...)
}

// Toggle удаляет опцию, если она уже выбрана, иначе добавляет в конец
func (s FeatureSelection) Toggle(f Feature) FeatureSelection {
	if s.Contains(f.Label) {
		out := make([]Feature, 0, len(s.items))
		for _, item := range s.items {
			if item.Label != f.Label {
				out = append(out, item)
			}
		}
		return FeatureSelection{items: out}
	}

	out := make([]Feature, len(s.items), len(s.items)+1)
	copy(out, s.items)
	return FeatureSelection{items: append(out, f)}
}

// Contains проверяет наличие опции по label
func (s FeatureSelection) Contains(label string) bool {
	for _, f := range s.items {
		if f.Label == label {
			return true
		}
	}
	return false
}

// Labels список выбранных label
func (s FeatureSelection) Labels() []string {
	labels := make([]string, 0, len(s.items))
	for _, f := range s.items {
		labels = append(labels, f.Label)
	}
	return labels
}

// Items копия выбранных опций
func (s FeatureSelection) Items() []Feature {
	out := make([]Feature, len(s.items))
	copy(out, s.items)
	return out
}

// Len количество выбранных опций
func (s FeatureSelection) Len() int {
	return len(s.items)
}

// ToBooked конвертирует выбор в формат {name, price}, цена берется из каталога
func (s FeatureSelection) ToBooked(catalog *FeatureCatalog) []BookedFeature {
	out := make([]BookedFeature, 0, len(s.items))
	for _, f := range s.items {
		price, _ := catalog.Price(f.Label)
		out = append(out, BookedFeature{Name: f.Label, Price: price})
	}
	return out
}
