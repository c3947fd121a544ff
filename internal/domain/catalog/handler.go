package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careassign/careassign/internal/platform/auth"
	"github.com/careassign/careassign/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("nurse", "physician")

	api.GET("/catalog/:kind", h.ListItems, role)
	api.GET("/catalog/:kind/:id", h.GetItem, role)
	api.POST("/catalog/medicine", h.CreateMedicine, role)
}

// ListItems handles GET /catalog/:kind with an optional ?q= title filter.
func (h *Handler) ListItems(c echo.Context) error {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items, err := h.svc.Search(c.Request().Context(), kind, c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	p := pagination.FromContext(c)
	total := len(items)
	if p.Offset < total {
		end := p.Offset + p.Limit
		if end > total {
			end = total
		}
		items = items[p.Offset:end]
	} else {
		items = nil
	}

	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) GetItem(c echo.Context) error {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if item.Kind != kind {
		return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
	}
	return c.JSON(http.StatusOK, item)
}

type createMedicineRequest struct {
	Title string `json:"title"`
}

// CreateMedicine handles POST /catalog/medicine for free-text medicine names.
func (h *Handler) CreateMedicine(c echo.Context) error {
	var req createMedicineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.CreateMedicine(c.Request().Context(), req.Title)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}
