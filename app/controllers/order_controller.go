package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
)

type OrderController struct {
	orders *repositories.OrderRepository
}

func NewOrderController(orders *repositories.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) Index(c *ctx.Context) {
	orders, err := oc.orders.ListAll(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Show serves GET /orders/{key}. A key that is a document id returns that
// order; any other key is treated as an owner email and returns their orders.
func (oc *OrderController) Show(c *ctx.Context) {
	key, ok := c.Param("key")
	if !ok {
		return
	}

	if repositories.IsObjectID(key) {
		order, err := oc.orders.GetByID(c.Context(), key)
		if err != nil {
			c.Fail(err)
			return
		}
		c.JSON(http.StatusOK, order)
		return
	}

	orders, err := oc.orders.FindMany(c.Context(), "email", key)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) Store(c *ctx.Context) {
	var order models.Order
	if !c.BindJSON(&order) {
		return
	}

	res, err := oc.orders.Insert(c.Context(), order)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Log().Info("order placed", "email", order.Email, "product", order.ProductID)
	c.JSON(http.StatusCreated, res)
}

func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.Param("id")
	if !ok {
		return
	}
	res, err := oc.orders.DeleteByID(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, res)
}
