package create_booking

import (
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor        domain.Actor // Идентичность и роль из identity-коллаборатора
	ServiceID    int64        // ID услуги из каталога
	MeetingType  string       // "physical" | "virtual"
	Location     *string      // Адрес для очной встречи
	VirtualLink  *string      // Ссылка для виртуальной встречи (опционально)
	ScheduledAt  time.Time    // Дата и время сессии
	RedeemPoints bool         // Оплатить часть стоимости баллами
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reference    string  // Reference-код бронирования
	CustomerID   int64   // ID клиента
	ServiceID    int64   // ID услуги
	Status       string  // Статус (всегда pending)
	MeetingType  string  // Тип встречи
	Location     *string // Адрес очной встречи
	VirtualLink  *string // Ссылка виртуальной встречи
	ScheduledAt  time.Time

	// Ценообразование
	ServiceTitle   string  // Название услуги на момент бронирования
	BasePrice      float64 // Базовая цена, ранды
	Discount       float64 // Скидка за баллы, ранды
	FinalPrice     float64 // Итоговая цена, ранды
	RedeemedPoints int64   // Списанные баллы
	PointsBalance  int64   // Баланс после списания

	CreatedAt time.Time
}

func toResponse(b *domain.Booking, balance int64) *Response {
	return &Response{
		Reference:      b.Reference,
		CustomerID:     b.CustomerID,
		ServiceID:      b.ServiceID,
		Status:         string(b.Status),
		MeetingType:    string(b.MeetingType),
		Location:       b.LocationAddress,
		VirtualLink:    b.VirtualLink,
		ScheduledAt:    b.ScheduledAt,
		ServiceTitle:   b.ServiceTitle,
		BasePrice:      b.BasePrice.Rands(),
		Discount:       b.Discount.Rands(),
		FinalPrice:     b.FinalPrice.Rands(),
		RedeemedPoints: b.RedeemedPoints,
		PointsBalance:  balance,
		CreatedAt:      b.CreatedAt,
	}
}
