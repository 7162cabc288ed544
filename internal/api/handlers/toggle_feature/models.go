package toggle_feature

// Request тело запроса на переключение опции
type Request struct {
	Label string `json:"label"`
}
