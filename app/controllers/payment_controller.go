package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
	"github.com/shashiranjanraj/kidsisland/pkg/payment"
)

type PaymentController struct {
	gateway payment.Gateway
}

func NewPaymentController(gateway payment.Gateway) *PaymentController {
	return &PaymentController{gateway: gateway}
}

type intentInput struct {
	Price float64 `json:"price"`
}

type intentOutput struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent starts checkout for a price in dollars.
func (pc *PaymentController) CreateIntent(c *ctx.Context) {
	var input intentInput
	if !c.BindJSON(&input) {
		return
	}

	secret, err := pc.gateway.CreateIntent(c.Context(), input.Price)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, intentOutput{ClientSecret: secret})
}
