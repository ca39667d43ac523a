package get_quote

import "github.com/m04kA/KMP-BookingService/internal/domain"

// Request модель запроса расчета цены
type Request struct {
	Actor     domain.Actor // Чей баланс участвует в расчете
	ServiceID int64        // ID услуги из каталога
	Redeem    bool         // Учитывать ли списание баллов
}

// Response расчет цены до создания бронирования
type Response struct {
	ServiceID      int64   `json:"serviceId"`
	ServiceTitle   string  `json:"serviceTitle"`
	BasePrice      float64 `json:"basePrice"`
	Discount       float64 `json:"discount"`
	FinalPrice     float64 `json:"finalPrice"`
	PointsToRedeem int64   `json:"pointsToRedeem"`
	PointsBalance  int64   `json:"pointsBalance"`
}
