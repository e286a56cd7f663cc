package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/service"
)

type PaymentController struct {
	paymentService      service.PaymentService
	subscriptionService service.SubscriptionService
}

func NewPaymentController(
	paymentService service.PaymentService,
	subscriptionService service.SubscriptionService,
) *PaymentController {
	return &PaymentController{
		paymentService:      paymentService,
		subscriptionService: subscriptionService,
	}
}

// List godoc
// @Summary List the caller's payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PaymentResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /payments [get]
func (c *PaymentController) List(ctx *gin.Context) {
	payments, err := c.paymentService.List(principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, payments)
}

// Create godoc
// @Summary Start a course purchase
// @Description Creates the payment record and a provider checkout session; the response carries the payment link.
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body dto.PaymentCreateDTO true "Course to purchase"
// @Security BearerAuth
// @Success 201 {object} dto.PaymentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Provider rejected the request"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Provider failure"
// @Router /payments [post]
func (c *PaymentController) Create(ctx *gin.Context) {
	var req dto.PaymentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	payment, err := c.paymentService.Create(principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, payment)
}

// Status godoc
// @Summary Poll the provider for a payment's status
// @Description Reads the checkout session and payment intent from the provider and stores the reported status.
// @Tags Payments
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Security BearerAuth
// @Success 200 {object} dto.PaymentStatusResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Provider rejected the request"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Provider failure"
// @Router /payments/{payment_id}/status [get]
func (c *PaymentController) Status(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "payment_id")
	if !ok {
		return
	}
	status, err := c.paymentService.Poll(principalFrom(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// ActivateSubscription godoc
// @Summary Activate the subscription for a succeeded payment
// @Description Idempotent: repeated calls leave exactly one active subscription for the (user, course) pair.
// @Tags Subscriptions
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionStatusResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Payment not successful"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Router /subscriptions/activate/{payment_id} [post]
func (c *PaymentController) ActivateSubscription(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "payment_id")
	if !ok {
		return
	}
	result, err := c.subscriptionService.Activate(principalFrom(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
