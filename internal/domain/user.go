package domain

// User is a back-office account managed by the backend.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role,omitempty"`
	IsActive  *bool  `json:"isActive,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Country   string `json:"country,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (u User) Active() bool { return u.IsActive == nil || *u.IsActive }

// Operator is a local login for the back-office, stored in sqlite.
type Operator struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

func (o *Operator) OperatorID() string { return o.ID }
