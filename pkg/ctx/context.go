// Package ctx provides the request context handed to storefront handlers.
//
//	func ShowProduct(c *ctx.Context) {
//	    id, ok := c.Param("id")
//	    if !ok {
//	        return
//	    }
//	    product, err := products.GetByID(c.Context(), id)
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.JSON(http.StatusOK, product)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(ShowProduct))
package ctx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/kidsisland/pkg/bind"
	"github.com/shashiranjanraj/kidsisland/pkg/errs"
	"github.com/shashiranjanraj/kidsisland/pkg/logger"
	"github.com/shashiranjanraj/kidsisland/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns the decoded URL path parameter. chi matches on RawPath when
// the request carries one, so "/users/ann%40x.com" yields "ann%40x.com"
// until it is unescaped here. A malformed escape writes 400 and returns false.
func (c *Context) Param(key string) (string, bool) {
	v := chi.URLParam(c.R, key)
	if c.R.URL.RawPath == "" {
		return v, true
	}
	v, err := url.PathUnescape(v)
	if err != nil {
		c.Fail(fmt.Errorf("path parameter %q: %w", key, errs.ErrInvalidArgument))
		return "", false
	}
	return v, true
}

// Context returns the request context. Store and payment calls take it so a
// client disconnect cancels them.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// BindJSON decodes and validates the body into dest. On failure it writes
// 400 (malformed body) or 422 (validation) and returns false.
func (c *Context) BindJSON(dest any) bool {
	fields, err := bind.JSON(c.W, c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if len(fields) > 0 {
		response.ValidationError(c.W, fields)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v as-is with the given status.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// Error sends the JSON error envelope.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// Fail maps err onto a status through the errs taxonomy and logs anything
// that is not a client error.
func (c *Context) Fail(err error) {
	if errs.StatusCode(err) >= http.StatusInternalServerError {
		c.Log().Error("request failed", "path", c.R.URL.Path, "error", err)
	}
	response.FromError(c.W, err)
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	fmt.Fprintf(c.W, format, args...)
}
