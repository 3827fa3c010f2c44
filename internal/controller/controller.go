package controller

import (
	"errors"
	"net/http"

	"github.com/akgarg0472/urlshortener-payment-service/internal/dto"
	"github.com/akgarg0472/urlshortener-payment-service/internal/service"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const userIDHeader = "X-User-ID"

type Controller struct {
	service service.PaymentService
}

func CreatePaymentController(e *echo.Group, service service.PaymentService) {
	c := Controller{
		service: service,
	}

	e.POST("/payments/order", c.CreateOrder)
	e.POST("/payments/capture", c.CaptureOrder)
	e.POST("/payments/cancel", c.CancelOrder)
	e.POST("/payments/webhook", c.PaymentWebhook)
	e.GET("/payments/order", c.GetOrder)
	e.GET("/payments/history", c.GetPaymentHistory)
}

func (c *Controller) CreateOrder(e echo.Context) error {
	payload := dto.CreateOrderRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if validationErrors := payload.Validate(); validationErrors != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, validationErrors)
	}

	if err := validateUserID(e, payload.UserID); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, []string{err.Error()})
	}

	resp, err := c.service.CreateOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Payment order created successfully", resp)
}

func (c *Controller) CaptureOrder(e echo.Context) error {
	payload := dto.CaptureOrderRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CaptureOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if validationErrors := payload.Validate(); validationErrors != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, validationErrors)
	}

	resp, err := c.service.CaptureOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, resp.Message, resp)
}

func (c *Controller) CancelOrder(e echo.Context) error {
	payload := dto.CancelPaymentRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CancelOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if validationErrors := payload.Validate(); validationErrors != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, validationErrors)
	}

	if err := validateUserID(e, payload.UserID); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, []string{err.Error()})
	}

	if err := c.service.CancelOrder(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Payment order cancelled successfully", nil)
}

// PaymentWebhook acknowledges every notification the router can parse, even
// ones it chooses to ignore; only structurally unparsable payloads get a
// non-2xx response so the gateway retries them.
func (c *Controller) PaymentWebhook(e echo.Context) error {
	payload := map[string]interface{}{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "PaymentWebhook").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := c.service.ProcessWebhook(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.NoContent(http.StatusOK)
}

func (c *Controller) GetOrder(e echo.Context) error {
	orderID := e.QueryParam("id")
	if orderID == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, []string{"Please provide valid order id"})
	}

	resp, err := c.service.GetOrder(e.Request().Context(), e.Request().Header.Get(userIDHeader), orderID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Payment order fetched successfully", resp)
}

func (c *Controller) GetPaymentHistory(e echo.Context) error {
	userID := e.Request().Header.Get(userIDHeader)
	if userID == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, []string{"Missing " + userIDHeader + " header"})
	}

	resp, err := c.service.GetPaymentHistory(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Payment history fetched successfully", resp)
}

func validateUserID(e echo.Context, requestUserID string) error {
	headerUserID := e.Request().Header.Get(userIDHeader)
	if headerUserID != "" && requestUserID != "" && headerUserID != requestUserID {
		return errors.New("UserId in header and request body mismatch")
	}
	return nil
}
