// Package controllers maps HTTP requests onto repository and payment calls.
// Handlers pass documents through unchanged; the only logic they hold is
// request binding and error mapping.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
)

// Liveness answers GET /.
func Liveness(c *ctx.Context) {
	c.String(http.StatusOK, "Kids Island server is running")
}
