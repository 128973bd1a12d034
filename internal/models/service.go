package models

// Service - услуга студии. Список услуг фиксирован и не изменяется через API.
type Service struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

// Clone возвращает копию услуги с собственным срезом Features.
func (s Service) Clone() Service {
	s.Features = append([]string(nil), s.Features...)
	return s
}
