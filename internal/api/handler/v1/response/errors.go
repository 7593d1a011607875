package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the body of every failed request.
type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Err        error  `json:"-"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

func (e *Err) Unwrap() error {
	return e.Err
}

func newErr(code int, message string, err error) *Err {
	return &Err{
		StatusCode: code,
		Message:    message,
		Err:        err,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "missing or invalid token", err)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, "wrong email or password", err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err.Error(), err)
}

func ErrNotFound(err error) *Err {
	return newErr(http.StatusNotFound, err.Error(), err)
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err.Error(), err)
}

func ErrPayloadTooLarge(limitMB int64) *Err {
	return newErr(http.StatusRequestEntityTooLarge, fmt.Sprintf("file is larger than %d MB", limitMB), nil)
}

// ErrInternalServerError hides err from the client; RenderErr logs it.
func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
}

// RenderErr aborts the request with e. Server side failures are logged with
// the request id so they can be matched with the client report.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.StatusCode, e)
}
