package catalogservice

import (
	"github.com/m04kA/KMP-BookingService/internal/domain"
	"github.com/m04kA/KMP-BookingService/pkg/money"
)

// Service модель услуги из каталога
type Service struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	RequiresLocation bool    `json:"requiresLocation"`
	BasePrice        float64 `json:"basePrice"`
}

// ToDomain конвертирует ответ каталога в domain модель.
// Цена каталога приходит в рандах и переводится в минорные единицы
// на границе системы.
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:               s.ID,
		Title:            s.Title,
		Description:      s.Description,
		RequiresLocation: s.RequiresLocation,
		BasePrice:        money.FromFloat(s.BasePrice),
	}
}
