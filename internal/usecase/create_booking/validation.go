package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.MeetingType, error) {
	if req.Actor.UserID <= 0 {
		return "", fmt.Errorf("%w: actor userID must be positive", ErrInvalidInput)
	}

	if req.Actor.Role != domain.RoleCustomer {
		return "", ErrNotCustomer
	}

	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return "", fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	meetingType, ok := domain.ParseMeetingType(req.MeetingType)
	if !ok {
		return "", ErrInvalidMeetingType
	}

	if err := validateMeetingPayload(meetingType, req.Location, req.VirtualLink); err != nil {
		return "", err
	}

	return meetingType, nil
}

// validateMeetingPayload проверяет инвариант: заполнен ровно тот payload,
// который требует тип встречи. Очная встреча требует адрес; виртуальная
// допускает пустую ссылку (её выдаст внешний коллаборатор), но не адрес.
func validateMeetingPayload(meetingType domain.MeetingType, location, link *string) error {
	hasLocation := location != nil && strings.TrimSpace(*location) != ""
	hasLink := link != nil && strings.TrimSpace(*link) != ""

	switch meetingType {
	case domain.MeetingPhysical:
		if !hasLocation {
			return ErrLocationRequired
		}
		if hasLink {
			return ErrAmbiguousMeetingPayload
		}
		if len(*location) > domain.MaxLocationAddressLength {
			return fmt.Errorf("%w: location address too long", ErrInvalidInput)
		}
	case domain.MeetingVirtual:
		if hasLocation {
			return ErrAmbiguousMeetingPayload
		}
		if hasLink && len(*link) > domain.MaxVirtualLinkLength {
			return fmt.Errorf("%w: virtual link too long", ErrInvalidInput)
		}
	}

	return nil
}

// validateSchedule проверяет, что сессия назначена строго в будущем
func validateSchedule(scheduledAt, now time.Time) error {
	if !scheduledAt.After(now) {
		return ErrScheduleInPast
	}
	return nil
}

// normalizePayload обнуляет пустые строки, чтобы в БД не попадали
// пустые значения вместо NULL
func normalizePayload(meetingType domain.MeetingType, location, link *string) (*string, *string) {
	var loc, vlink *string

	if meetingType == domain.MeetingPhysical {
		trimmed := strings.TrimSpace(*location)
		loc = &trimmed
	}
	if meetingType == domain.MeetingVirtual && link != nil {
		trimmed := strings.TrimSpace(*link)
		if trimmed != "" {
			vlink = &trimmed
		}
	}

	return loc, vlink
}
