package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
)

type ReviewController struct {
	reviews *repositories.ReviewRepository
}

func NewReviewController(reviews *repositories.ReviewRepository) *ReviewController {
	return &ReviewController{reviews: reviews}
}

func (rc *ReviewController) Index(c *ctx.Context) {
	reviews, err := rc.reviews.ListAll(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) Store(c *ctx.Context) {
	var review models.Review
	if !c.BindJSON(&review) {
		return
	}

	res, err := rc.reviews.Insert(c.Context(), review)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
