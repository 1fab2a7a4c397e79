package response

type JournalLineDetail struct {
	AccountID   int64  `json:"account_id"`
	AccountCode string `json:"account_code,omitempty"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Description string `json:"description,omitempty"`
}

type JournalEntryDetail struct {
	ID            int64               `json:"id"`
	JournalNumber string              `json:"journal_number"`
	EntryDate     string              `json:"entry_date"`
	Description   string              `json:"description"`
	ReferenceType string              `json:"reference_type"`
	ReferenceID   string              `json:"reference_id"`
	Lines         []JournalLineDetail `json:"lines"`
}

type AccountBalance struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	CurrentBalance string `json:"current_balance"`
}

type InvoiceDetail struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
	BookingID     string `json:"booking_id"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	Subtotal      string `json:"subtotal"`
	TaxAmount     string `json:"tax_amount"`
	Total         string `json:"total"`
	AmountPaid    string `json:"amount_paid"`
	Status        string `json:"status"`
}
