package domain

type Order struct {
	ID              int64         `json:"id,omitempty"`
	OrderNumber     string        `json:"orderNumber,omitempty"`
	CustomerID      int64         `json:"customerId,omitempty"`
	Customer        *Customer     `json:"customer,omitempty"`
	Status          OrderStatus   `json:"status,omitempty"`
	TotalAmount     float64       `json:"totalAmount"`
	DiscountAmount  float64       `json:"discountAmount,omitempty"`
	FinalAmount     float64       `json:"finalAmount"`
	OrderDate       string        `json:"orderDate,omitempty"`
	DeliveryDate    string        `json:"deliveryDate,omitempty"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	DeliveryCity    string        `json:"deliveryCity,omitempty"`
	DeliveryState   string        `json:"deliveryState,omitempty"`
	DeliveryPincode string        `json:"deliveryPincode,omitempty"`
	ContactPhone    string        `json:"contactPhone,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentStatus   PaymentStatus `json:"paymentStatus,omitempty"`
	OrderItems      []OrderItem   `json:"orderItems"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	UpdatedAt       string        `json:"updatedAt,omitempty"`
}

// CustomerName prefers the embedded customer record over the bare id.
func (o Order) CustomerName() string {
	if o.Customer != nil {
		return o.Customer.Name
	}
	return ""
}

type OrderItem struct {
	ID         int64   `json:"id,omitempty"`
	BookID     int64   `json:"bookId"`
	Book       *Book   `json:"book,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Discount   float64 `json:"discount,omitempty"`
}

type OrderLine struct {
	BookID    int64   `json:"bookId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type CreateOrderRequest struct {
	CustomerID      int64         `json:"customerId"`
	OrderItems      []OrderLine   `json:"orderItems"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	DeliveryCity    string        `json:"deliveryCity,omitempty"`
	DeliveryState   string        `json:"deliveryState,omitempty"`
	DeliveryPincode string        `json:"deliveryPincode,omitempty"`
	ContactPhone    string        `json:"contactPhone,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty"`
}
