package domain

const (
	MessageNew     = "NEW"
	MessageHandled = "HANDLED"
)

// ContactSubjects are the enquiry topics offered on the contact form, in display order.
var ContactSubjects = []struct{ Value, Label string }{
	{"general", "General Inquiry"},
	{"order", "Order Related"},
	{"books", "Book Availability"},
	{"shipping", "Shipping & Delivery"},
	{"return", "Return & Refund"},
	{"bulk", "Bulk Orders"},
	{"other", "Other"},
}

type ContactMessage struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Subject   string `db:"subject" json:"subject"`
	Message   string `db:"message" json:"message"`
	BookID    int64  `db:"book_id" json:"bookId,omitempty"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
