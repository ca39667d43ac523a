package models

import (
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// PointsEntryResponse одна запись реестра баллов
type PointsEntryResponse struct {
	ID           int64     `json:"id"`
	BookingID    *int64    `json:"bookingId,omitempty"`
	EntryType    string    `json:"entryType"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PointsResponse баланс и история операций пользователя
type PointsResponse struct {
	UserID     int64                 `json:"userId"`
	Balance    int64                 `json:"balance"`
	TotalSpent float64               `json:"totalSpent"`
	Entries    []PointsEntryResponse `json:"entries"`
}

// FromDomain собирает ответ из профиля и записей реестра
func FromDomain(profile *domain.UserProfile, entries []*domain.PointsEntry) *PointsResponse {
	resp := &PointsResponse{
		UserID:     profile.ID,
		Balance:    profile.Points,
		TotalSpent: profile.TotalSpent.Rands(),
		Entries:    make([]PointsEntryResponse, len(entries)),
	}

	for i, e := range entries {
		resp.Entries[i] = PointsEntryResponse{
			ID:           e.ID,
			BookingID:    e.BookingID,
			EntryType:    string(e.EntryType),
			Amount:       e.Amount,
			BalanceAfter: e.BalanceAfter,
			CreatedAt:    e.CreatedAt,
		}
	}

	return resp
}
