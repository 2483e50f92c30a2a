package domain

import "strings"

type Board string

const (
	BoardCBSE       Board = "CBSE"
	BoardICSE       Board = "ICSE"
	BoardStateBoard Board = "STATE_BOARD"
	BoardIGCSE      Board = "IGCSE"
	BoardIB         Board = "IB"
	BoardNCERT      Board = "NCERT"
)

var Boards = []Board{BoardCBSE, BoardICSE, BoardStateBoard, BoardIGCSE, BoardIB, BoardNCERT}

type CategoryType string

const (
	CategoryGradeLevel CategoryType = "GRADE_LEVEL"
	CategorySubject    CategoryType = "SUBJECT"
	CategoryBookType   CategoryType = "BOOK_TYPE"
	CategoryBoard      CategoryType = "BOARD"
	CategoryLanguage   CategoryType = "LANGUAGE"
)

var CategoryTypes = []CategoryType{CategoryGradeLevel, CategorySubject, CategoryBookType, CategoryBoard, CategoryLanguage}

type CustomerType string

const (
	CustomerIndividual  CustomerType = "INDIVIDUAL"
	CustomerSchool      CustomerType = "SCHOOL"
	CustomerInstitution CustomerType = "INSTITUTION"
	CustomerBulkBuyer   CustomerType = "BULK_BUYER"
)

var CustomerTypes = []CustomerType{CustomerIndividual, CustomerSchool, CustomerInstitution, CustomerBulkBuyer}

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderReturned   OrderStatus = "RETURNED"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderReturned}

type PaymentMethod string

const (
	PayCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PayOnline         PaymentMethod = "ONLINE_PAYMENT"
	PayBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PayUPI            PaymentMethod = "UPI"
	PayCreditCard     PaymentMethod = "CREDIT_CARD"
	PayDebitCard      PaymentMethod = "DEBIT_CARD"
)

var PaymentMethods = []PaymentMethod{PayCashOnDelivery, PayOnline, PayBankTransfer, PayUPI, PayCreditCard, PayDebitCard}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentPartial  PaymentStatus = "PARTIAL"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded, PaymentPartial}

type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleManager          Role = "MANAGER"
	RoleStaff            Role = "STAFF"
	RoleInventoryManager Role = "INVENTORY_MANAGER"
	RoleSalesPerson      Role = "SALES_PERSON"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleStaff, RoleInventoryManager, RoleSalesPerson}

func (b Board) Label() string         { return label(string(b)) }
func (t CategoryType) Label() string  { return label(string(t)) }
func (t CustomerType) Label() string  { return label(string(t)) }
func (s OrderStatus) Label() string   { return label(string(s)) }
func (m PaymentMethod) Label() string { return label(string(m)) }
func (s PaymentStatus) Label() string { return label(string(s)) }
func (r Role) Label() string          { return label(string(r)) }

var acronyms = map[string]bool{"CBSE": true, "ICSE": true, "IGCSE": true, "IB": true, "NCERT": true, "UPI": true}

// label turns STATE_BOARD into "State Board"; acronyms keep their case.
func label(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" || acronyms[w] {
			continue
		}
		words[i] = w[:1] + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// OneOf reports whether v is a member of values.
func OneOf[T ~string](v T, values []T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
