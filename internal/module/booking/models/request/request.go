package request

// TicketLine selects a quantity from one ticket class of an event.
type TicketLine struct {
	TicketClassID int64 `json:"ticket_class_id" validate:"required"`
	Quantity      int   `json:"quantity" validate:"required,gt=0"`
}

// ExtraLine is an ad-hoc additional service on a hall booking.
type ExtraLine struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gte=0"`
}

type CheckAvailability struct {
	Kind    string       `json:"kind" validate:"required,oneof=hall event"`
	HallID  int64        `json:"hall_id" validate:"required_if=Kind hall"`
	StartAt string       `json:"start_at" validate:"required_if=Kind hall"`
	EndAt   string       `json:"end_at" validate:"required_if=Kind hall"`
	Tickets []TicketLine `json:"tickets" validate:"required_if=Kind event,dive"`
}

type Quote struct {
	Kind    string       `json:"kind" validate:"required,oneof=hall event"`
	HallID  int64        `json:"hall_id" validate:"required_if=Kind hall"`
	StartAt string       `json:"start_at" validate:"required_if=Kind hall"`
	EndAt   string       `json:"end_at" validate:"required_if=Kind hall"`
	Extras  []ExtraLine  `json:"extras" validate:"dive"`
	Tickets []TicketLine `json:"tickets" validate:"required_if=Kind event,dive"`
}

type CreateBooking struct {
	Kind        string       `json:"kind" validate:"required,oneof=hall event"`
	HallID      int64        `json:"hall_id" validate:"required_if=Kind hall"`
	StartAt     string       `json:"start_at" validate:"required_if=Kind hall"`
	EndAt       string       `json:"end_at" validate:"required_if=Kind hall"`
	Extras      []ExtraLine  `json:"extras" validate:"dive"`
	Tickets     []TicketLine `json:"tickets" validate:"required_if=Kind event,dive"`
	CustomerID  int64        `json:"customer_id" validate:"required"`
	PaymentType string       `json:"payment_type" validate:"required,oneof=full partial"`
}

type RecordPayment struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required"`
	PaidAt    string  `json:"paid_at"`
}

type CancelBooking struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Reason    string `json:"reason" validate:"required"`
}

type BookingExpiration struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type BookingNotification struct {
	BookingID      string `json:"booking_id" validate:"required"`
	BookingNumber  string `json:"booking_number" validate:"required"`
	Message        string `json:"message" validate:"required"`
	EmailRecipient string `json:"email_recipient" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}
