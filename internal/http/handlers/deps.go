package handlers

import (
	"schoolbooks/internal/api"
	"schoolbooks/internal/config"
	"schoolbooks/internal/events"
	"schoolbooks/internal/repos"
	"schoolbooks/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	StoreHandler   *StoreHandler
	ContactHandler *ContactHandler
	AdminHandler   *AdminHandler
	BookAdmin      *BookAdmin
	CategoryAdmin  *CategoryAdmin
	CustomerAdmin  *CustomerAdmin
	OrderAdmin     *OrderAdmin
	UserAdmin      *UserAdmin
}

func NewDeps(client *api.Client, db *sqlx.DB, cfg config.Config, pub events.Publisher) *Deps {
	authSvc := &services.AuthService{Operators: repos.NewOperatorRepo(db)}
	inbox := repos.NewContactRepo(db)

	storeSvc := &services.StoreService{API: client}
	contactSvc := &services.ContactService{Inbox: inbox, Publisher: pub}
	dashSvc := &services.DashboardService{API: client, Inbox: inbox, Threshold: cfg.LowStockThreshold}

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		StoreHandler:   &StoreHandler{Store: storeSvc},
		ContactHandler: &ContactHandler{Contact: contactSvc, Store: storeSvc},
		AdminHandler:   &AdminHandler{Dash: dashSvc, Contact: contactSvc, Auth: authSvc, Config: cfg},
		BookAdmin:      &BookAdmin{Books: &services.BookService{API: client}, Auth: authSvc},
		CategoryAdmin:  &CategoryAdmin{Categories: &services.CategoryService{API: client}, Auth: authSvc},
		CustomerAdmin:  &CustomerAdmin{Customers: &services.CustomerService{API: client}, Auth: authSvc},
		OrderAdmin:     &OrderAdmin{Orders: &services.OrderService{API: client}, Auth: authSvc},
		UserAdmin:      &UserAdmin{Users: &services.UserService{API: client}, Auth: authSvc},
	}
}
