package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/middleware"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Error kinds returned to clients so they can tell a bad cart from a failed payment.
const (
	KindInvalidCart       = "invalid_cart"
	KindItemUnavailable   = "item_unavailable"
	KindPaymentFailed     = "payment_failed"
	KindInvalidTransition = "invalid_transition"
)

type CheckoutService interface {
	BeginCheckout(ctx context.Context, identity entities.Identity, cart []entities.CartItem, address entities.ShippingAddress) (entities.PaymentIntent, error)
	FinalizeCheckout(ctx context.Context, intentID string) (entities.CaptureResult, error)
}

type OrderAdmin interface {
	GetOrder(ctx context.Context, id string) (entities.OrderDetails, error)
	UpdateOrder(ctx context.Context, identity entities.Identity, id string, change orderstate.Change) (entities.Order, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	checkout CheckoutService
	admin    OrderAdmin
}

func NewHTTPHandler(logger *slog.Logger, checkout CheckoutService, admin OrderAdmin) *HTTPHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validate,
		checkout: checkout,
		admin:    admin,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/payment", h.BeginCheckout)
		r.Put("/payment", h.FinalizeCheckout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/{id}", h.GetOrder)
			r.Put("/{id}", h.UpdateOrder)
		})
	})
}

// BeginCheckout creates a pending order and a payment intent for it.
// @Summary      Start checkout
// @Description  Prices the cart from the catalog, stores a pending order and opens a payment intent
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePaymentRequest  true  "Cart and shipping address"
// @Success      201  {object}  PaymentIntent
// @Failure      400  {object}  utils.ValidationErrorResponse "Invalid cart or address"
// @Failure      401  {object}  utils.ErrorResponse "Not signed in"
// @Failure      404  {object}  ItemUnavailableResponse "Product no longer available"
// @Failure      502  {object}  GatewayErrorResponse "Payment processor failure"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /orders/payment [post]
func (h *HTTPHandler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePaymentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteKindError(w, KindInvalidCart, "malformed request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteFieldErrors(w, KindInvalidCart, "invalid cart", utils.FieldErrors(err))
		return
	}

	identity := middleware.IdentityFrom(ctx)
	intent, err := h.checkout.BeginCheckout(ctx, identity, CartJSONToEntity(req.Items), AddressJSONToEntity(req.ShippingAddress))
	if err != nil {
		h.writeError(w, r, err, KindInvalidCart)
		return
	}

	utils.WriteJSON(w, IntentEntityToJSON(intent), http.StatusCreated)
}

// FinalizeCheckout captures an approved payment intent.
// @Summary      Capture payment
// @Description  Captures an approved intent; a completed capture marks the order paid
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      CapturePaymentRequest  true  "Intent to capture"
// @Success      200  {object}  CaptureResult
// @Failure      400  {object}  utils.ValidationErrorResponse "Missing intent id"
// @Failure      409  {object}  InvalidTransitionResponse "Order cannot be paid"
// @Failure      502  {object}  GatewayErrorResponse "Payment processor failure"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Router       /orders/payment [put]
func (h *HTTPHandler) FinalizeCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CapturePaymentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteKindError(w, utils.KindInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	res, err := h.checkout.FinalizeCheckout(ctx, req.IntentID)
	if err != nil {
		h.writeError(w, r, err, utils.KindInvalidRequest)
		return
	}

	utils.WriteJSON(w, CaptureEntityToJSON(res), http.StatusOK)
}

// GetOrder returns an order with its owner.
// @Summary      Get order
// @Description  Returns the full order with the owner's name and email
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  Order
// @Failure      401  {object}  utils.ErrorResponse "Not signed in"
// @Failure      403  {object}  utils.ErrorResponse "Not an admin"
// @Failure      404  {object}  utils.ErrorResponse "Order not found"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	// Ids are UUIDs; anything else cannot name an order.
	if err := uuid.Validate(id); err != nil {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	details, err := h.admin.GetOrder(ctx, id)
	if err != nil {
		h.writeError(w, r, err, utils.KindInvalidRequest)
		return
	}

	utils.WriteJSON(w, DetailsEntityToJSON(details), http.StatusOK)
}

// UpdateOrder changes an order's status or flags.
// @Summary      Update order
// @Description  Applies a status change; marking an order delivered forces the delivered status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Order id"
// @Param        request  body      UpdateOrderRequest  true  "Requested change"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Invalid change"
// @Failure      401  {object}  utils.ErrorResponse "Not signed in"
// @Failure      403  {object}  utils.ErrorResponse "Not an admin"
// @Failure      404  {object}  utils.ErrorResponse "Order not found"
// @Failure      409  {object}  InvalidTransitionResponse "Transition not allowed"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := uuid.Validate(id); err != nil {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	var req UpdateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteKindError(w, utils.KindInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.admin.UpdateOrder(ctx, middleware.IdentityFrom(ctx), id, ChangeJSONToEntity(req))
	if err != nil {
		h.writeError(w, r, err, utils.KindInvalidRequest)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ItemUnavailableResponse names the cart product that could not be resolved.
// swagger:model ItemUnavailableResponse
type ItemUnavailableResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	ProductID string `json:"productId"`
}

// GatewayErrorResponse carries the processor's status and body as received.
// swagger:model GatewayErrorResponse
type GatewayErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	GatewayStatus int    `json:"gatewayStatus,omitempty"`
	GatewayBody   string `json:"gatewayBody,omitempty"`
}

// InvalidTransitionResponse names the stored and the requested status.
// swagger:model InvalidTransitionResponse
type InvalidTransitionResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error, validationKind string) {
	var (
		validationErr *entities.ValidationError
		notFoundErr   *entities.LineItemNotFoundError
		transitionErr *entities.InvalidTransitionError
		gatewayErr    *entities.GatewayError
	)

	switch {
	case errors.As(err, &validationErr):
		apiErrorsTotal.WithLabelValues(validationKind).Inc()
		utils.WriteFieldErrors(w, validationKind, validationErr.Error(), map[string]string{
			validationErr.Field: validationErr.Reason,
		})
	case errors.As(err, &notFoundErr):
		apiErrorsTotal.WithLabelValues(KindItemUnavailable).Inc()
		utils.WriteJSON(w, ItemUnavailableResponse{
			Error:     KindItemUnavailable,
			Message:   notFoundErr.Error(),
			ProductID: notFoundErr.ProductID,
		}, http.StatusNotFound)
	case errors.Is(err, entities.ErrUnauthenticated):
		apiErrorsTotal.WithLabelValues("unauthenticated").Inc()
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, entities.ErrForbidden):
		apiErrorsTotal.WithLabelValues("forbidden").Inc()
		utils.WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, entities.ErrOrderNotFound):
		apiErrorsTotal.WithLabelValues("not_found").Inc()
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.As(err, &transitionErr):
		apiErrorsTotal.WithLabelValues(KindInvalidTransition).Inc()
		utils.WriteJSON(w, InvalidTransitionResponse{
			Error:   KindInvalidTransition,
			Message: transitionErr.Error(),
			From:    string(transitionErr.From),
			To:      string(transitionErr.To),
		}, http.StatusConflict)
	case errors.As(err, &gatewayErr):
		apiErrorsTotal.WithLabelValues(KindPaymentFailed).Inc()
		h.logger.WarnContext(r.Context(), "payment processor failure", slog.Any("error", err))
		utils.WriteJSON(w, GatewayErrorResponse{
			Error:         KindPaymentFailed,
			Message:       "payment could not be completed",
			GatewayStatus: gatewayErr.Status,
			GatewayBody:   gatewayErr.Body,
		}, http.StatusBadGateway)
	case errors.Is(err, entities.ErrCredentialsMissing):
		apiErrorsTotal.WithLabelValues(KindPaymentFailed).Inc()
		h.logger.ErrorContext(r.Context(), "payment processor is not configured", slog.Any("error", err))
		utils.WriteKindError(w, KindPaymentFailed, "payment could not be completed", http.StatusBadGateway)
	case errors.Is(err, entities.ErrUnlinkedCapture):
		apiErrorsTotal.WithLabelValues(KindPaymentFailed).Inc()
		utils.WriteKindError(w, KindPaymentFailed, "payment was captured but could not be matched to an order", http.StatusBadGateway)
	default:
		apiErrorsTotal.WithLabelValues("internal").Inc()
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
