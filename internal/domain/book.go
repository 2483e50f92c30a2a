package domain

type Book struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       float64   `json:"price"`
	MRP         float64   `json:"mrp"`
	Discount    float64   `json:"discount,omitempty"`
	Quantity    int       `json:"quantity"`
	Grade       int       `json:"grade"`
	Subject     string    `json:"subject"`
	Board       Board     `json:"board"`
	ISBN        string    `json:"isbn,omitempty"`
	Publisher   string    `json:"publisher,omitempty"`
	Edition     string    `json:"edition,omitempty"`
	Language    string    `json:"language,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
	CategoryID  int64     `json:"categoryId,omitempty"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}

// Active treats a missing flag as active; the backend omits it on older records.
func (b Book) Active() bool { return b.IsActive == nil || *b.IsActive }

// Discounted reports whether the list price is above the selling price.
func (b Book) Discounted() bool { return b.MRP > b.Price }
