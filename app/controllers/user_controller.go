package controllers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
	"github.com/shashiranjanraj/kidsisland/pkg/errs"
)

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

type adminStatus struct {
	Admin bool `json:"admin"`
}

// Admin reports whether the user with the given email is an admin. Unknown
// emails are simply not admins.
func (uc *UserController) Admin(c *ctx.Context) {
	email, ok := c.Param("email")
	if !ok {
		return
	}
	user, err := uc.users.FindOne(c.Context(), "email", email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, adminStatus{Admin: err == nil && user.IsAdmin()})
}

// Store registers a user from the sign-up form.
func (uc *UserController) Store(c *ctx.Context) {
	var user models.User
	if !c.BindJSON(&user) {
		return
	}

	res, err := uc.users.Insert(c.Context(), user)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Upsert records a social sign-in: the user is created on first login and
// updated in place afterwards.
func (uc *UserController) Upsert(c *ctx.Context) {
	var user models.User
	if !c.BindJSON(&user) {
		return
	}

	res, err := uc.users.UpsertByKey(c.Context(), "email", user.Email, user)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type makeAdminInput struct {
	Email string `json:"email" validate:"required,email"`
}

// MakeAdmin sets role "admin" on the user with the given email.
func (uc *UserController) MakeAdmin(c *ctx.Context) {
	var input makeAdminInput
	if !c.BindJSON(&input) {
		return
	}

	res, err := uc.users.UpdateFields(c.Context(), "email", input.Email, bson.M{"role": models.RoleAdmin})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Log().Info("admin role granted", "email", input.Email, "matched", res.MatchedCount)
	c.JSON(http.StatusOK, res)
}
