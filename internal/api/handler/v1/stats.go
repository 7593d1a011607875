package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/service"
)

type StatsService interface {
	Get(ctx context.Context, actor domain.Actor) (service.Stats, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleGetStats godoc
// @Summary      Admin dashboard totals
// @Tags         admin
// @Produce      json
// @Success      200  {object}  service.Stats
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *StatsHandler) HandleGetStats(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.Get(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetStats -> h.svc.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
