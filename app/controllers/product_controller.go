package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
)

// HomeProductLimit is how many products the home page previews.
const HomeProductLimit = 6

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// Index lists every product.
func (pc *ProductController) Index(c *ctx.Context) {
	products, err := pc.products.ListAll(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Home lists the home page preview.
func (pc *ProductController) Home(c *ctx.Context) {
	products, err := pc.products.ListLimited(c.Context(), HomeProductLimit)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.Param("id")
	if !ok {
		return
	}
	product, err := pc.products.GetByID(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var product models.Product
	if !c.BindJSON(&product) {
		return
	}

	res, err := pc.products.Insert(c.Context(), product)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Log().Info("product added", "name", product.Name, "id", res.InsertedID)
	c.JSON(http.StatusCreated, res)
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.Param("id")
	if !ok {
		return
	}
	res, err := pc.products.DeleteByID(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, res)
}
