package domain

type Category struct {
	ID           int64        `json:"id,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	CategoryType CategoryType `json:"categoryType,omitempty"`
	IsActive     *bool        `json:"isActive,omitempty"`
	Books        []Book       `json:"books,omitempty"`
	CreatedAt    string       `json:"createdAt,omitempty"`
	UpdatedAt    string       `json:"updatedAt,omitempty"`
}

func (c Category) Active() bool { return c.IsActive == nil || *c.IsActive }
