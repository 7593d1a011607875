package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

type CatalogService interface {
	ForUser(ctx context.Context, actor domain.Actor) (domain.Catalog, error)
	Summary(ctx context.Context, actor domain.Actor) (domain.Summary, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleGetCatalog godoc
// @Summary      Videos and kits partitioned by the caller's access
// @Description  Buckets are free, unpurchased, pending and purchased.
// @Tags         me
// @Produce      json
// @Success      200  {object}  domain.Catalog
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/catalog [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetCatalog(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	catalog, err := h.svc.ForUser(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetCatalog -> h.svc.ForUser", err)
		return
	}

	ctx.JSON(http.StatusOK, catalog)
}

// HandleGetSummary godoc
// @Summary      Student dashboard summary
// @Tags         me
// @Produce      json
// @Success      200  {object}  domain.Summary
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/summary [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetSummary(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetSummary -> h.svc.Summary", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
