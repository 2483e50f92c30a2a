package handlers

import (
	"strconv"

	"schoolbooks/internal/domain"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserAdmin struct {
	Users *services.UserService
	Auth  *services.AuthService
}

// GET /admin/users?q=&role=
func (h *UserAdmin) List(c *fiber.Ctx) error {
	q := c.Query("q")
	role := domain.Role(c.Query("role"))
	if !domain.OneOf(role, domain.Roles) {
		role = ""
	}
	users, err := h.Users.List(reqCtx(c), q, role)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.users.list.fail", "Failed to fetch users")
	}
	return render(c, "admin_users", fiber.Map{"Users": users, "Q": q, "Role": string(role)})
}

// GET /admin/users/new
func (h *UserAdmin) New(c *fiber.Ctx) error {
	return render(c, "admin_user_form", fiber.Map{"Mode": "new", "Form": &validate.UserForm{Role: string(domain.RoleStaff), IsActive: true}})
}

func (h *UserAdmin) Show(c *fiber.Ctx) error { return h.load(c, "view") }

func (h *UserAdmin) Edit(c *fiber.Ctx) error { return h.load(c, "edit") }

func (h *UserAdmin) load(c *fiber.Ctx, mode string) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "User not found")
	}
	u, err := h.Users.Get(reqCtx(c), id)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.users.get.fail", "Failed to fetch user")
	}
	form := validate.UserFormFrom(u)
	return render(c, "admin_user_form", fiber.Map{"Mode": mode, "ID": id, "Form": &form, "User": u, "Password": &validate.PasswordForm{}})
}

// POST /admin/users
func (h *UserAdmin) Create(c *fiber.Ctx) error {
	var form validate.UserForm
	data := fiber.Map{"Mode": "new", "Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.users.create", "admin_user_form", data, err)
	}
	u, err := h.Users.Create(reqCtx(c), form)
	form.Password = ""
	if err != nil {
		return formFail(c, h.Auth, err, "admin.users.create.fail", "Failed to save user", "admin_user_form", data)
	}
	applog.Audit(c, "admin.users.create", map[string]any{"user_id": u.ID, "role": u.Role})
	return done(c, "User created successfully", "/admin/users")
}

// POST /admin/users/:id
func (h *UserAdmin) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "User not found")
	}
	var form validate.UserForm
	data := fiber.Map{"Mode": "edit", "ID": id, "Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.users.update", "admin_user_form", data, err)
	}
	if _, err := h.Users.Update(reqCtx(c), id, form); err != nil {
		return formFail(c, h.Auth, err, "admin.users.update.fail", "Failed to save user", "admin_user_form", data)
	}
	applog.Audit(c, "admin.users.update", map[string]any{"user_id": id, "role": form.Role})
	return done(c, "User updated successfully", "/admin/users")
}

// POST /admin/users/:id/delete
func (h *UserAdmin) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "User not found")
	}
	if err := h.Users.Delete(reqCtx(c), id); err != nil {
		return redirectFail(c, h.Auth, err, "admin.users.delete.fail", "Failed to delete user", "/admin/users")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return done(c, "User deleted successfully", "/admin/users")
}

// POST /admin/users/:id/password
func (h *UserAdmin) Password(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "User not found")
	}
	back := "/admin/users/" + strconv.FormatInt(id, 10)
	var form validate.PasswordForm
	if err := c.BodyParser(&form); err != nil {
		setFlash(c, flashError, "Invalid form")
		return c.Redirect(back)
	}
	if err := h.Users.ChangePassword(reqCtx(c), id, form); err != nil {
		return redirectFail(c, h.Auth, err, "admin.users.password.fail", "Failed to change password", back)
	}
	applog.Audit(c, "admin.users.password", map[string]any{"user_id": id})
	return done(c, "Password changed", back)
}
