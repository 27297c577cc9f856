package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/helpers"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/models"
	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/repositories"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/validation"
)

const paramOrderID = "orderId"

// ShippingHandler serves the shipping back office pages. It only maps view
// models and fills dropdowns; storage is left to the repository.
type ShippingHandler struct {
	repo      repositories.OrderRepository
	validator *validation.Validator
	log       *logrus.Logger
}

func NewShippingHandler(
	repo repositories.OrderRepository,
	validator *validation.Validator,
	log *logrus.Logger,
) *ShippingHandler {
	return &ShippingHandler{
		repo:      repo,
		validator: validator,
		log:       log,
	}
}

func (h *ShippingHandler) Index() echo.HandlerFunc {
	return func(c echo.Context) error {
		shippings, err := h.repo.GetShippings(c.Request().Context())
		if err != nil {
			h.log.WithField("error", err).Error("Error from the repository when retrieving shippings")
			return err
		}

		return c.Render(http.StatusOK, viewIndex, toShippingSummaries(shippings))
	}
}

func (h *ShippingHandler) Details() echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := helpers.GetFromPathParam(c, paramOrderID)
		if err != nil {
			return err
		}

		shipping, err := h.repo.GetShipping(c.Request().Context(), orderID)
		if err != nil {
			h.log.WithFields(logrus.Fields{"order_id": orderID, "error": err}).Warn("Failed to retrieve shipping")
			return err
		}

		return c.Render(http.StatusOK, viewDetails, toShippingViewModel(shipping))
	}
}

func (h *ShippingHandler) CreateForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		vm := models.ShippingViewModel{
			PostalCarrierID: models.DefaultPostalCarrierID,
			OrderLines:      []models.OrderLineViewModel{},
		}

		return h.renderForm(c, viewCreate, vm, nil)
	}
}

func (h *ShippingHandler) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		h.log.Infof("Received request to create shipping from IP: %s", c.RealIP())

		vm, fieldErrors, err := h.bindShipping(c)
		if err != nil {
			return err
		}
		// The repository assigns the id of a new shipping.
		vm.ID = ""

		if len(fieldErrors) > 0 {
			return h.renderForm(c, viewCreate, vm, fieldErrors)
		}

		shipping := toShippingEntity(vm)
		if err := h.repo.AddShipping(ctx, shipping); err != nil {
			h.log.WithField("error", err).Error("Failed to add shipping")
			return err
		}

		h.log.WithField("order_id", shipping.ID).Info("Shipping created")
		return c.Redirect(http.StatusSeeOther, routeIndex)
	}
}

func (h *ShippingHandler) EditForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := helpers.GetFromPathParam(c, paramOrderID)
		if err != nil {
			return err
		}

		var (
			shipping     *entities.Shipping
			productCount int
			carriers     []entities.PostalCarrier
		)

		g, gctx := errgroup.WithContext(c.Request().Context())
		g.Go(func() error {
			var err error
			shipping, err = h.repo.GetShipping(gctx, orderID)
			return err
		})
		g.Go(func() error {
			var err error
			productCount, err = h.repo.GetProductCount(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			carriers, err = h.repo.GetPostalCarriers(gctx)
			return err
		})

		if err := g.Wait(); err != nil {
			h.log.WithFields(logrus.Fields{"order_id": orderID, "error": err}).Warn("Failed to load shipping for edit")
			return err
		}

		vm := toShippingViewModel(shipping)
		vm.MaxAvailableItems = productCount

		return c.Render(http.StatusOK, viewEdit, h.formPage(c, vm, carriers, nil))
	}
}

func (h *ShippingHandler) Edit() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		vm, fieldErrors, err := h.bindShipping(c)
		if err != nil {
			return err
		}

		if vm.ID == "" {
			fieldErrors = mergeErrors(fieldErrors, map[string]string{"ID": "is required"})
		}

		if len(fieldErrors) > 0 {
			return h.renderForm(c, viewEdit, vm, fieldErrors)
		}

		if err := h.repo.UpdateShipping(ctx, toShippingEntity(vm)); err != nil {
			h.log.WithFields(logrus.Fields{"order_id": vm.ID, "error": err}).Error("Failed to update shipping")
			return err
		}

		h.log.WithField("order_id", vm.ID).Info("Shipping updated")
		return c.Redirect(http.StatusSeeOther, routeDetails+vm.ID)
	}
}

func (h *ShippingHandler) AddOrderItem() echo.HandlerFunc {
	return func(c echo.Context) error {
		onOrder := helpers.ToSet(c.QueryParams()["productIds"])

		products, err := h.repo.GetProducts(c.Request().Context())
		if err != nil {
			h.log.WithField("error", err).Error("Failed to retrieve products")
			return err
		}

		for _, product := range products {
			if _, taken := onOrder[product.ID]; !taken {
				return c.Render(http.StatusOK, viewOrderLine, toNewOrderLine(product))
			}
		}

		return apperrors.ErrNoProductsAvailable
	}
}

func (h *ShippingHandler) Error() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, viewError, models.ErrorPage{
			Status:    http.StatusInternalServerError,
			Message:   msgGenericError,
			RequestID: getRequestID(c),
		})
	}
}

// bindShipping reads the posted form into a view model together with its
// model state. Values are kept as posted; text carrying markup is reported
// as a field error. Only a malformed request is returned as an error.
func (h *ShippingHandler) bindShipping(c echo.Context) (models.ShippingViewModel, map[string]string, error) {
	var form models.ShippingForm
	if err := c.Bind(&form); err != nil {
		h.log.WithField("error", err).Warn("Failed to bind shipping form")
		return models.ShippingViewModel{}, nil, apperrors.ErrInvalidRequestPayload
	}

	vm, fieldErrors := form.ToViewModel()
	fieldErrors = mergeErrors(fieldErrors, h.validator.FieldErrors(vm))
	fieldErrors = mergeErrors(fieldErrors, h.validator.MarkupErrors(vm))

	return vm, fieldErrors, nil
}

// renderForm reloads the postal carrier dropdown and renders a form view.
// The edit view also gets the product count back, since it is not posted.
func (h *ShippingHandler) renderForm(c echo.Context, view string, vm models.ShippingViewModel, fieldErrors map[string]string) error {
	var carriers []entities.PostalCarrier

	g, gctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		carriers, err = h.repo.GetPostalCarriers(gctx)
		return err
	})
	if view == viewEdit {
		g.Go(func() error {
			var err error
			vm.MaxAvailableItems, err = h.repo.GetProductCount(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		h.log.WithField("error", err).Error("Failed to reload form lookups")
		return err
	}

	return c.Render(http.StatusOK, view, h.formPage(c, vm, carriers, fieldErrors))
}

func (h *ShippingHandler) formPage(c echo.Context, vm models.ShippingViewModel, carriers []entities.PostalCarrier, fieldErrors map[string]string) models.ShippingFormPage {
	return models.ShippingFormPage{
		Shipping:       vm,
		PostalCarriers: carriers,
		Statuses:       entities.ShippingStatuses,
		Errors:         fieldErrors,
		CSRFToken:      getCSRFToken(c),
	}
}
