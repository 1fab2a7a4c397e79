package response

type UserServiceValidate struct {
	IsValid   bool   `json:"is_valid"`
	UserID    int64  `json:"user_id"`
	EmailUser string `json:"email_user"`
}

type ConflictingBooking struct {
	BookingNumber string `json:"booking_number"`
	StartAt       string `json:"start_at"`
	EndAt         string `json:"end_at"`
	Status        string `json:"status"`
}

type Availability struct {
	Available bool                 `json:"available"`
	Reasons   []string             `json:"reasons,omitempty"`
	Conflicts []ConflictingBooking `json:"conflicts,omitempty"`
}

type Quote struct {
	Subtotal   string `json:"subtotal"`
	ServiceFee string `json:"service_fee"`
	TaxAmount  string `json:"tax_amount"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
}

type CreatedBooking struct {
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	Status        string `json:"status"`
	Total         string `json:"total"`
	BalanceDue    string `json:"balance_due"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
}

type BookingSummary struct {
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	Kind          string `json:"kind"`
	StartAt       string `json:"start_at,omitempty"`
	EndAt         string `json:"end_at,omitempty"`
	Total         string `json:"total"`
	AmountPaid    string `json:"amount_paid"`
	BalanceDue    string `json:"balance_due"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type PaymentResult struct {
	PaymentID     int64  `json:"payment_id"`
	BookingID     string `json:"booking_id"`
	AmountPaid    string `json:"amount_paid"`
	BalanceDue    string `json:"balance_due"`
	PaymentStatus string `json:"payment_status"`
	BookingStatus string `json:"booking_status"`
}
