package leadchat

// MeetingType enumerates how a booked call takes place.
type MeetingType string

const (
	MeetingVideo MeetingType = "video"
	MeetingPhone MeetingType = "phone"
)

// Booking holds call-booking details. A booking is set atomically by the
// booking action; it is never merged incrementally. A later booking
// replaces the whole structure.
type Booking struct {
	Date string      `json:"date,omitempty"` // calendar date, e.g. "2024-06-01"
	Time string      `json:"time,omitempty"` // time-of-day slot, e.g. "14:00"
	Type MeetingType `json:"type,omitempty"`
}

// ValidateBooking checks the booking boundary requirements: the contact
// snapshot must carry a name and an email, and the booking must carry a
// date and a time. Returns a ValidationError naming every missing field,
// or nil when the input is complete.
func ValidateBooking(contact Contact, booking Booking) error {
	var missing []string

	if contact.Name == "" {
		missing = append(missing, "name")
	}
	if contact.Email == "" {
		missing = append(missing, "email")
	}
	if booking.Date == "" {
		missing = append(missing, "date")
	}
	if booking.Time == "" {
		missing = append(missing, "time")
	}

	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	return nil
}
