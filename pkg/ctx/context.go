// Package ctx provides the request context POS handlers receive.
//
// A handler takes a single *Context and returns an error. Wrap turns it into
// an http.HandlerFunc; a returned error is logged with the request id and,
// when nothing has been written yet, answered with 500 {"error": "..."}.
//
//	router.Get("/categories", "categories.index", ctx.Wrap(func(c *ctx.Context) error {
//	    list, err := svc.List(c.Context())
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, list)
//	}))
package ctx

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/cafepos/pkg/bind"
	"github.com/shashiranjanraj/cafepos/pkg/logger"
	"github.com/shashiranjanraj/cafepos/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context) error

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)

		if err := h(c); err != nil {
			logger.WithCtx(r.Context()).Error("handler failed",
				"error", err.Error(),
				"method", r.Method,
				"path", r.URL.Path,
			)
			if c.status == 0 {
				response.Internal(w, err)
			}
		}
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // 0 until a response is written
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamInt parses a URL path parameter as a base-10 integer. ok is false
// when the parameter is not a number.
func (c *Context) ParamInt(key string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(key), 10, 64)
	return n, err == nil
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// BindJSON decodes the JSON body into dest.
func (c *Context) BindJSON(dest any) error {
	return bind.JSON(c.R, dest)
}

// BindMultipart parses a multipart/form-data body. Call it before FormValue
// and FormFile.
func (c *Context) BindMultipart() error {
	return bind.Multipart(c.R)
}

// FormValue returns a form field, or "" when absent.
func (c *Context) FormValue(key string) string {
	return c.R.FormValue(key)
}

// FormFile returns an uploaded file. ok is false when the field is absent or
// not a file part.
func (c *Context) FormFile(key string) (multipart.File, *multipart.FileHeader, bool) {
	f, hdr, err := c.R.FormFile(key)
	if err != nil {
		return nil, nil, false
	}
	return f, hdr, true
}

// JSON writes a JSON response with the given status.
func (c *Context) JSON(code int, v any) error {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	return json.NewEncoder(c.W).Encode(v)
}

// Success sends 200 {"success": true}.
func (c *Context) Success() error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// NotFound sends the plain-text 404.
func (c *Context) NotFound() error {
	c.status = http.StatusNotFound
	response.NotFound(c.W)
	return nil
}

// File serves a file from the local filesystem.
func (c *Context) File(path string) error {
	c.status = http.StatusOK
	http.ServeFile(c.W, c.R, path)
	return nil
}
