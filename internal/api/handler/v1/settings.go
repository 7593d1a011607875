package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/request"
	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

type SettingsService interface {
	Get(ctx context.Context, actor domain.Actor) (domain.PaymentSettings, error)
	Save(ctx context.Context, actor domain.Actor, settings domain.PaymentSettings) (domain.PaymentSettings, error)
}

type SettingsHandler struct {
	svc SettingsService
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

// HandleGetSettings godoc
// @Summary      Where students send their payments
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.PaymentSettings
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /payment-settings [get]
// @Security BearerAuth
func (h *SettingsHandler) HandleGetSettings(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	settings, err := h.svc.Get(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetSettings -> h.svc.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleSaveSettings godoc
// @Summary      Replace the payment settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body      request.PaymentSettingsRequest  true  "request body"
// @Success      200      {object}  domain.PaymentSettings
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payment-settings [put]
// @Security BearerAuth
func (h *SettingsHandler) HandleSaveSettings(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PaymentSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	settings, err := h.svc.Save(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSaveSettings -> h.svc.Save", err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}
