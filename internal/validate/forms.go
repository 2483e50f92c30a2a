package validate

import (
	"strings"

	"schoolbooks/internal/domain"
)

type BookForm struct {
	Title       string  `form:"title" validate:"notblank,max=200"`
	Author      string  `form:"author" validate:"notblank,max=120"`
	Description string  `form:"description" validate:"max=2000"`
	Image       string  `form:"image" validate:"max=500"`
	Price       float64 `form:"price" validate:"gt=0"`
	MRP         float64 `form:"mrp" validate:"gt=0"`
	Discount    float64 `form:"discount" validate:"gte=0"`
	Quantity    int     `form:"quantity" validate:"gte=0"`
	Grade       int     `form:"grade" validate:"min=1"`
	Subject     string  `form:"subject" validate:"notblank,max=80"`
	Board       string  `form:"board" validate:"required,board"`
	ISBN        string  `form:"isbn" validate:"max=20"`
	Publisher   string  `form:"publisher" validate:"max=120"`
	Edition     string  `form:"edition" validate:"max=40"`
	Language    string  `form:"language" validate:"max=40"`
	CategoryID  int64   `form:"categoryId" validate:"gte=0"`
	IsActive    bool    `form:"isActive"`
}

func (BookForm) messages() map[string]string {
	return map[string]string{
		"title.notblank":   "Title is required",
		"author.notblank":  "Author is required",
		"subject.notblank": "Subject is required",
		"price.gt":         "Price must be greater than 0",
		"mrp.gt":           "MRP must be greater than 0",
		"discount.gte":     "Discount cannot be negative",
		"quantity.gte":     "Quantity cannot be negative",
		"grade.min":        "Grade must be at least 1",
		"board.required":   "Board is required",
		"board.board":      "Select a valid board",
	}
}

func (f BookForm) Book() domain.Book {
	active := f.IsActive
	return domain.Book{
		Title:       strings.TrimSpace(f.Title),
		Author:      strings.TrimSpace(f.Author),
		Description: strings.TrimSpace(f.Description),
		Image:       strings.TrimSpace(f.Image),
		Price:       f.Price,
		MRP:         f.MRP,
		Discount:    f.Discount,
		Quantity:    f.Quantity,
		Grade:       f.Grade,
		Subject:     strings.TrimSpace(f.Subject),
		Board:       domain.Board(f.Board),
		ISBN:        strings.TrimSpace(f.ISBN),
		Publisher:   strings.TrimSpace(f.Publisher),
		Edition:     strings.TrimSpace(f.Edition),
		Language:    strings.TrimSpace(f.Language),
		CategoryID:  f.CategoryID,
		IsActive:    &active,
	}
}

func BookFormFrom(b domain.Book) BookForm {
	return BookForm{
		Title: b.Title, Author: b.Author, Description: b.Description, Image: b.Image,
		Price: b.Price, MRP: b.MRP, Discount: b.Discount, Quantity: b.Quantity, Grade: b.Grade,
		Subject: b.Subject, Board: string(b.Board), ISBN: b.ISBN, Publisher: b.Publisher,
		Edition: b.Edition, Language: b.Language, CategoryID: b.CategoryID, IsActive: b.Active(),
	}
}

type StockForm struct {
	Quantity int `form:"quantity" validate:"gte=0"`
}

func (StockForm) messages() map[string]string {
	return map[string]string{"quantity.gte": "Quantity cannot be negative"}
}

type CategoryForm struct {
	Name         string `form:"name" validate:"notblank,max=100"`
	Description  string `form:"description" validate:"max=500"`
	CategoryType string `form:"categoryType" validate:"omitempty,category_type"`
	IsActive     bool   `form:"isActive"`
}

func (CategoryForm) messages() map[string]string {
	return map[string]string{
		"name.notblank":              "Category name is required",
		"categoryType.category_type": "Select a valid category type",
	}
}

func (f CategoryForm) Category() domain.Category {
	active := f.IsActive
	return domain.Category{
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		CategoryType: domain.CategoryType(f.CategoryType),
		IsActive:     &active,
	}
}

func CategoryFormFrom(c domain.Category) CategoryForm {
	return CategoryForm{Name: c.Name, Description: c.Description, CategoryType: string(c.CategoryType), IsActive: c.Active()}
}

type CustomerForm struct {
	Name            string `form:"name" validate:"notblank,max=120"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"required,min=10,max=20"`
	Address         string `form:"address" validate:"max=300"`
	City            string `form:"city" validate:"max=80"`
	State           string `form:"state" validate:"max=80"`
	Pincode         string `form:"pincode" validate:"max=12"`
	Country         string `form:"country" validate:"max=80"`
	CustomerType    string `form:"customerType" validate:"omitempty,customer_type"`
	InstitutionName string `form:"institutionName" validate:"max=150"`
	ContactPerson   string `form:"contactPerson" validate:"max=120"`
	GSTNumber       string `form:"gstNumber" validate:"max=20"`
	IsActive        bool   `form:"isActive"`
}

func (CustomerForm) messages() map[string]string {
	return map[string]string{
		"name.notblank":  "Name is required",
		"email.required": "Email is required",
		"email.email":    "Invalid email format",
		"phone.required": "Phone number is required",
		"phone.min":      "Phone number must be at least 10 digits",
	}
}

func (f CustomerForm) Customer() domain.Customer {
	active := f.IsActive
	return domain.Customer{
		Name:            strings.TrimSpace(f.Name),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		Address:         strings.TrimSpace(f.Address),
		City:            strings.TrimSpace(f.City),
		State:           strings.TrimSpace(f.State),
		Pincode:         strings.TrimSpace(f.Pincode),
		Country:         strings.TrimSpace(f.Country),
		CustomerType:    domain.CustomerType(f.CustomerType),
		InstitutionName: strings.TrimSpace(f.InstitutionName),
		ContactPerson:   strings.TrimSpace(f.ContactPerson),
		GSTNumber:       strings.ToUpper(strings.TrimSpace(f.GSTNumber)),
		IsActive:        &active,
	}
}

func CustomerFormFrom(c domain.Customer) CustomerForm {
	return CustomerForm{
		Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, City: c.City, State: c.State,
		Pincode: c.Pincode, Country: c.Country, CustomerType: string(c.CustomerType),
		InstitutionName: c.InstitutionName, ContactPerson: c.ContactPerson, GSTNumber: c.GSTNumber, IsActive: c.Active(),
	}
}

// UserForm leaves password optional; creating a user additionally requires one.
type UserForm struct {
	Name     string `form:"name" validate:"notblank,max=120"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"omitempty,min=8,max=72"`
	Phone    string `form:"phone" validate:"omitempty,min=10,max=20"`
	Role     string `form:"role" validate:"omitempty,role"`
	Address  string `form:"address" validate:"max=300"`
	City     string `form:"city" validate:"max=80"`
	State    string `form:"state" validate:"max=80"`
	Zip      string `form:"zip" validate:"max=12"`
	Country  string `form:"country" validate:"max=80"`
	IsActive bool   `form:"isActive"`
}

func (UserForm) messages() map[string]string {
	return map[string]string{
		"name.notblank":  "Name is required",
		"email.required": "Email is required",
		"email.email":    "Invalid email format",
		"password.min":   "Password must be at least 8 characters",
		"role.role":      "Select a valid role",
	}
}

// ForCreate runs the tag checks plus the create-only password rule.
func (f UserForm) ForCreate() Errors {
	errs := Form(f)
	if f.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	return errs
}

func (f UserForm) User() domain.User {
	active := f.IsActive
	return domain.User{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Phone:    strings.TrimSpace(f.Phone),
		Role:     domain.Role(f.Role),
		Address:  strings.TrimSpace(f.Address),
		City:     strings.TrimSpace(f.City),
		State:    strings.TrimSpace(f.State),
		Zip:      strings.TrimSpace(f.Zip),
		Country:  strings.TrimSpace(f.Country),
		IsActive: &active,
	}
}

func UserFormFrom(u domain.User) UserForm {
	return UserForm{
		Name: u.Name, Email: u.Email, Phone: u.Phone, Role: string(u.Role), Address: u.Address,
		City: u.City, State: u.State, Zip: u.Zip, Country: u.Country, IsActive: u.Active(),
	}
}

type PasswordForm struct {
	Current string `form:"currentPassword" validate:"required"`
	New     string `form:"newPassword" validate:"required,min=8,max=72"`
	Confirm string `form:"confirmPassword" validate:"eqfield=New"`
}

func (PasswordForm) messages() map[string]string {
	return map[string]string{
		"currentPassword.required": "Current password is required",
		"newPassword.required":     "New password is required",
		"newPassword.min":          "Password must be at least 8 characters",
		"confirmPassword.eqfield":  "Passwords do not match",
	}
}

type OrderLineForm struct {
	BookID    int64   `validate:"gt=0"`
	Quantity  int     `validate:"min=1"`
	UnitPrice float64 `validate:"gt=0"`
}

// OrderForm posts its lines as parallel bookId/quantity/unitPrice lists.
type OrderForm struct {
	CustomerID      int64     `form:"customerId" validate:"gt=0"`
	BookIDs         []int64   `form:"bookId"`
	Quantities      []int     `form:"quantity"`
	UnitPrices      []float64 `form:"unitPrice"`
	DeliveryAddress string    `form:"deliveryAddress" validate:"max=300"`
	DeliveryCity    string    `form:"deliveryCity" validate:"max=80"`
	DeliveryState   string    `form:"deliveryState" validate:"max=80"`
	DeliveryPincode string    `form:"deliveryPincode" validate:"max=12"`
	ContactPhone    string    `form:"contactPhone" validate:"omitempty,min=10,max=20"`
	Notes           string    `form:"notes" validate:"max=1000"`
	PaymentMethod   string    `form:"paymentMethod" validate:"omitempty,payment_method"`

	Lines []OrderLineForm `form:"-" validate:"min=1,dive"`
}

func (OrderForm) messages() map[string]string {
	return map[string]string{
		"customerId.gt":                "Select a customer",
		"Lines.min":                    "Add at least one book",
		"BookID.gt":                    "Select a book for every line",
		"Quantity.min":                 "Quantity must be at least 1",
		"UnitPrice.gt":                 "Unit price must be greater than 0",
		"paymentMethod.payment_method": "Select a valid payment method",
	}
}

// Collect zips the posted columns into lines, dropping rows left blank.
func (f *OrderForm) Collect() {
	f.Lines = nil
	for i, id := range f.BookIDs {
		line := OrderLineForm{BookID: id}
		if i < len(f.Quantities) {
			line.Quantity = f.Quantities[i]
		}
		if i < len(f.UnitPrices) {
			line.UnitPrice = f.UnitPrices[i]
		}
		if line == (OrderLineForm{}) {
			continue
		}
		f.Lines = append(f.Lines, line)
	}
}

func (f OrderForm) Request() domain.CreateOrderRequest {
	req := domain.CreateOrderRequest{
		CustomerID:      f.CustomerID,
		DeliveryAddress: strings.TrimSpace(f.DeliveryAddress),
		DeliveryCity:    strings.TrimSpace(f.DeliveryCity),
		DeliveryState:   strings.TrimSpace(f.DeliveryState),
		DeliveryPincode: strings.TrimSpace(f.DeliveryPincode),
		ContactPhone:    strings.TrimSpace(f.ContactPhone),
		Notes:           strings.TrimSpace(f.Notes),
		PaymentMethod:   domain.PaymentMethod(f.PaymentMethod),
	}
	for _, l := range f.Lines {
		req.OrderItems = append(req.OrderItems, domain.OrderLine{BookID: l.BookID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return req
}

type OrderStatusForm struct {
	Status string `form:"status" validate:"required,order_status"`
}

type PaymentStatusForm struct {
	PaymentStatus string `form:"paymentStatus" validate:"required,payment_status"`
}

type DateRangeForm struct {
	Start string `form:"start" validate:"required,datetime=2006-01-02"`
	End   string `form:"end" validate:"required,datetime=2006-01-02"`
}

func (DateRangeForm) messages() map[string]string {
	return map[string]string{
		"start.required": "Start date is required",
		"end.required":   "End date is required",
	}
}

// Check adds the ordering rule the tags cannot express.
func (f DateRangeForm) Check() Errors {
	errs := Form(f)
	if len(errs) == 0 && f.End < f.Start {
		errs = append(errs, FieldError{Field: "end", Message: "End date must not be before start date"})
	}
	return errs
}

type ContactForm struct {
	Name    string `form:"name" validate:"notblank,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"omitempty,min=10,max=20"`
	Subject string `form:"subject" validate:"required,oneof=general order books shipping return bulk other"`
	Message string `form:"message" validate:"notblank,max=2000"`
	BookID  int64  `form:"bookId" validate:"gte=0"`
}

func (ContactForm) messages() map[string]string {
	return map[string]string{
		"name.notblank":    "Name is required",
		"email.required":   "Email is required",
		"email.email":      "Invalid email format",
		"phone.min":        "Phone number must be at least 10 digits",
		"subject.required": "Please choose a subject",
		"subject.oneof":    "Please choose a subject",
		"message.notblank": "Message is required",
	}
}
