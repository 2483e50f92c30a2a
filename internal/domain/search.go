package domain

type SearchRequest struct {
	Title   string
	Author  string
	Grade   int
	Subject string
	Board   Board

	OrderNumber string
	CustomerID  int64
	OrderStatus OrderStatus
	StartDate   string
	EndDate     string

	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

type Page[T any] struct {
	Content          []T  `json:"content"`
	TotalElements    int  `json:"totalElements"`
	TotalPages       int  `json:"totalPages"`
	Size             int  `json:"size"`
	Number           int  `json:"number"`
	First            bool `json:"first"`
	Last             bool `json:"last"`
	NumberOfElements int  `json:"numberOfElements"`
	Empty            bool `json:"empty"`
}
