package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/api/middleware"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/service"
)

var (
	errNoActor         = errors.New("no authenticated user in context")
	errInvalidUploadID = errors.New("invalid uploadID")
)

// errClasses maps service sentinels to responses. The sentinel, not the
// wrapped chain, is what the client sees. Order matters: the first match wins.
var errClasses = []struct {
	target error
	render func(error) *response.Err
}{
	{domain.ErrForbidden, response.ErrPermissionDenied},
	{service.ErrContentLocked, response.ErrPermissionDenied},

	{service.ErrUserNotFound, response.ErrNotFound},
	{service.ErrVideoNotFound, response.ErrNotFound},
	{service.ErrKitNotFound, response.ErrNotFound},
	{service.ErrPaymentNotFound, response.ErrNotFound},
	{service.ErrKitPurchaseNotFound, response.ErrNotFound},
	{service.ErrNotInKit, response.ErrNotFound},
	{service.ErrUploadNotFound, response.ErrNotFound},

	{service.ErrPaymentAlreadyDecided, response.ErrConflict},
	{service.ErrVideoNotReady, response.ErrConflict},

	{service.ErrUserEmailExists, response.ErrBadRequest},
	{service.ErrMissingProof, response.ErrBadRequest},
	{service.ErrInvalidStatus, response.ErrBadRequest},
	{service.ErrAmbiguousTarget, response.ErrBadRequest},
	{service.ErrContentIsFree, response.ErrBadRequest},
	{service.ErrMissingThumbnail, response.ErrBadRequest},
	{service.ErrNoVideos, response.ErrBadRequest},
	{service.ErrInvalidKitPrice, response.ErrBadRequest},
	{service.ErrEmptyKitUpdate, response.ErrBadRequest},
	{domain.ErrValidation, response.ErrBadRequest},
}

// renderServiceErr classifies err; anything unknown is a 500 tagged with op.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	for _, c := range errClasses {
		if errors.Is(err, c.target) {
			response.RenderErr(ctx, c.render(c.target))
			return
		}
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

// getActor reads what middleware.VerifyJWT stored.
func getActor(ctx *gin.Context) (domain.Actor, *response.Err) {
	id := ctx.GetUint(middleware.ContextKeyUserID)
	if id == 0 {
		return domain.Actor{}, response.ErrUnauthorized(errNoActor)
	}
	value, _ := ctx.Get(middleware.ContextKeyRole)
	role, _ := value.(domain.Role)

	return domain.Actor{UserID: id, Role: role}, nil
}

func paramID(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s", name))
	}

	return uint(id), nil
}

// limitBody caps a multipart request at the upload limit plus room for the
// other form fields.
func limitBody(ctx *gin.Context, maxMB int64) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, (maxMB+1)<<20)
}

// readUpload loads the multipart file field into memory. A missing file
// yields nil so the service reports its own domain error.
func readUpload(ctx *gin.Context, field string, maxMB int64) (*service.File, *response.Err) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			return nil, nil
		case errors.As(err, &tooLarge):
			return nil, response.ErrPayloadTooLarge(maxMB)
		default:
			return nil, response.ErrBadRequest(fmt.Errorf("invalid multipart form: %w", err))
		}
	}

	limit := maxMB << 20
	if fh.Size > limit {
		return nil, response.ErrPayloadTooLarge(maxMB)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, response.ErrInternalServerError(fmt.Errorf("fh.Open -> %w", err))
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, response.ErrInternalServerError(fmt.Errorf("io.ReadAll -> %w", err))
	}
	if int64(len(data)) > limit {
		return nil, response.ErrPayloadTooLarge(maxMB)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &service.File{
		Name:        fh.Filename,
		ContentType: contentType,
		Content:     data,
	}, nil
}

// bindForm binds multipart fields, reporting an oversized body as 413.
func bindForm(ctx *gin.Context, obj any, maxMB int64) *response.Err {
	if err := ctx.ShouldBind(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return response.ErrPayloadTooLarge(maxMB)
		}
		return response.ErrBadRequest(err)
	}

	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
