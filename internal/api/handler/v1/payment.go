package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/request"
	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/service"
)

type PaymentService interface {
	Submit(ctx context.Context, actor domain.Actor, req service.SubmitRequest) (service.Submission, error)
	DecideVideoPayment(ctx context.Context, actor domain.Actor, paymentID uint, status domain.PaymentStatus) (domain.Payment, error)
	DecideKitPurchase(ctx context.Context, actor domain.Actor, purchaseID uint, status domain.PaymentStatus) (domain.KitPurchase, error)
	ListPayments(ctx context.Context, actor domain.Actor, status domain.PaymentStatus) ([]domain.Payment, error)
	ListKitPurchases(ctx context.Context, actor domain.Actor, status domain.PaymentStatus) ([]domain.KitPurchase, error)
	ListOwnPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error)
	ListOwnKitPurchases(ctx context.Context, actor domain.Actor) ([]domain.KitPurchase, error)
}

type PaymentHandler struct {
	svc         PaymentService
	maxUploadMB int64
}

func NewPaymentHandler(svc PaymentService, maxUploadMB int64) *PaymentHandler {
	return &PaymentHandler{
		svc:         svc,
		maxUploadMB: maxUploadMB,
	}
}

// HandleSubmitPayment godoc
// @Summary      Submit a proof of payment for a video or a kit
// @Description  Exactly one of video_id and kit_id must be set. The new row is PENDING.
// @Tags         payments
// @Accept       mpfd
// @Produce      json
// @Param        video_id  formData  int   false  "Video ID"
// @Param        kit_id    formData  int   false  "Kit ID"
// @Param        proof     formData  file  true   "Proof of payment"
// @Success      201       {object}  service.Submission
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      413       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /payments [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleSubmitPayment(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	limitBody(ctx, h.maxUploadMB)

	var req request.SubmitPaymentRequest
	if respErr = bindForm(ctx, &req, h.maxUploadMB); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	proof, respErr := readUpload(ctx, "proof", h.maxUploadMB)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submission, err := h.svc.Submit(ctx.Request.Context(), actor, service.SubmitRequest{
		VideoID: req.VideoID,
		KitID:   req.KitID,
		Proof:   proof,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmitPayment -> h.svc.Submit", err)
		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// HandleListPayments godoc
// @Summary      List every video payment, newest first
// @Tags         payments
// @Produce      json
// @Param        status  query     string  false  "PENDING, APPROVED, REJECTED or ALL"
// @Success      200     {array}   domain.Payment
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /payments [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleListPayments(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	status, err := domain.ParseStatusFilter(ctx.Query("status"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payments, err := h.svc.ListPayments(ctx.Request.Context(), actor, status)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPayments -> h.svc.ListPayments", err)
		return
	}

	ctx.JSON(http.StatusOK, nonNil(payments))
}

// HandleDecidePayment godoc
// @Summary      Approve or reject a pending video payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        paymentID  path      int                           true  "Payment ID"
// @Param        request    body      request.DecidePaymentRequest  true  "request body"
// @Success      200        {object}  domain.Payment
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err  "already decided"
// @Failure      500        {object}  response.Err
// @Router       /payments/{paymentID}/status [patch]
// @Security BearerAuth
func (h *PaymentHandler) HandleDecidePayment(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "paymentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DecidePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payment, err := h.svc.DecideVideoPayment(ctx.Request.Context(), actor, id, req.Decision())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDecidePayment -> h.svc.DecideVideoPayment", err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// HandleListKitPurchases godoc
// @Summary      List every kit purchase, newest first
// @Tags         payments
// @Produce      json
// @Param        status  query     string  false  "PENDING, APPROVED, REJECTED or ALL"
// @Success      200     {array}   domain.KitPurchase
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /kit-purchases [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleListKitPurchases(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	status, err := domain.ParseStatusFilter(ctx.Query("status"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchases, err := h.svc.ListKitPurchases(ctx.Request.Context(), actor, status)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListKitPurchases -> h.svc.ListKitPurchases", err)
		return
	}

	ctx.JSON(http.StatusOK, nonNil(purchases))
}

// HandleDecideKitPurchase godoc
// @Summary      Approve or reject a pending kit purchase
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        purchaseID  path      int                           true  "Kit purchase ID"
// @Param        request     body      request.DecidePaymentRequest  true  "request body"
// @Success      200         {object}  domain.KitPurchase
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err  "already decided"
// @Failure      500         {object}  response.Err
// @Router       /kit-purchases/{purchaseID}/status [patch]
// @Security BearerAuth
func (h *PaymentHandler) HandleDecideKitPurchase(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "purchaseID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DecidePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchase, err := h.svc.DecideKitPurchase(ctx.Request.Context(), actor, id, req.Decision())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDecideKitPurchase -> h.svc.DecideKitPurchase", err)
		return
	}

	ctx.JSON(http.StatusOK, purchase)
}

// HandleListOwnPayments godoc
// @Summary      The caller's video payments, newest first
// @Tags         me
// @Produce      json
// @Success      200  {array}   domain.Payment
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/payments [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleListOwnPayments(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	payments, err := h.svc.ListOwnPayments(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOwnPayments -> h.svc.ListOwnPayments", err)
		return
	}

	ctx.JSON(http.StatusOK, nonNil(payments))
}

// HandleListOwnKitPurchases godoc
// @Summary      The caller's kit purchases, newest first
// @Tags         me
// @Produce      json
// @Success      200  {array}   domain.KitPurchase
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/kit-purchases [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleListOwnKitPurchases(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	purchases, err := h.svc.ListOwnKitPurchases(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOwnKitPurchases -> h.svc.ListOwnKitPurchases", err)
		return
	}

	ctx.JSON(http.StatusOK, nonNil(purchases))
}
