package domain

type Customer struct {
	ID              int64        `json:"id,omitempty"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Address         string       `json:"address,omitempty"`
	City            string       `json:"city,omitempty"`
	State           string       `json:"state,omitempty"`
	Pincode         string       `json:"pincode,omitempty"`
	Country         string       `json:"country,omitempty"`
	CustomerType    CustomerType `json:"customerType,omitempty"`
	InstitutionName string       `json:"institutionName,omitempty"`
	ContactPerson   string       `json:"contactPerson,omitempty"`
	GSTNumber       string       `json:"gstNumber,omitempty"`
	IsActive        *bool        `json:"isActive,omitempty"`
	CreatedAt       string       `json:"createdAt,omitempty"`
	UpdatedAt       string       `json:"updatedAt,omitempty"`
}

func (c Customer) Active() bool { return c.IsActive == nil || *c.IsActive }
