package assignment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careassign/careassign/internal/domain/catalog"
	"github.com/careassign/careassign/internal/domain/schedule"
	"github.com/careassign/careassign/internal/platform/auth"
	"github.com/careassign/careassign/pkg/pagination"
)

type Handler struct {
	svc     *Service
	catalog *catalog.Service
}

func NewHandler(svc *Service, cat *catalog.Service) *Handler {
	return &Handler{svc: svc, catalog: cat}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("nurse", "physician")

	api.POST("/patients/:patientID/assignments", h.CreateAssignment, role)
	api.GET("/patients/:patientID/assignments", h.ListAssignments, role)
	api.GET("/assignments/:id", h.GetAssignment, role)
	api.DELETE("/assignments/:id", h.RemoveAssignment, role)

	api.POST("/schedule/validate", h.ValidateSchedule, role)
	api.POST("/schedule/preview", h.PreviewSchedule, role)
}

// createRequest is the JSON body for creating an assignment. Either item_id
// references a catalog entry, or (medicine only) item_title creates a
// free-text entry on the fly.
type createRequest struct {
	Kind        string       `json:"kind"`
	ItemID      string       `json:"item_id"`
	ItemTitle   string       `json:"item_title"`
	Schedule    schedule.Raw `json:"schedule"`
	FoodTimings []string     `json:"food_timings"`
	Note        string       `json:"note"`
}

// validationFailure is the 422 payload carrying inline field errors.
type validationFailure struct {
	Errors  []schedule.ValidationError `json:"errors"`
	Notices []schedule.ValidationError `json:"notices,omitempty"`
}

// createResponse wraps the committed assignment with any clamp notices so
// the client can correct displayed values.
type createResponse struct {
	Assignment *Assignment                `json:"assignment"`
	Notices    []schedule.ValidationError `json:"notices,omitempty"`
}

// CreateAssignment handles POST /patients/:patientID/assignments.
func (h *Handler) CreateAssignment(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.resolveItem(c, kind, req)
	if err != nil {
		return err
	}

	res := schedule.Validate(req.Schedule, kind.SchedulePolicy())
	if !res.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, validationFailure{
			Errors:  res.Errors,
			Notices: res.Notices,
		})
	}

	timings, err := parseFoodTimings(req.FoodTimings)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.Create(c.Request().Context(), CreateParams{
		PatientID:   c.Param("patientID"),
		AssignedBy:  auth.UserIDFromContext(c.Request().Context()),
		Item:        *item,
		Spec:        res.Spec,
		FoodTimings: timings,
		Note:        req.Note,
	})
	if err != nil {
		if errors.Is(err, ErrNoItemSelected) || errors.Is(err, ErrMissingPatient) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, createResponse{Assignment: a, Notices: res.Notices})
}

func (h *Handler) resolveItem(c echo.Context, kind catalog.Kind, req createRequest) (*catalog.Item, error) {
	if req.ItemID != "" {
		item, err := h.catalog.Get(c.Request().Context(), req.ItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrItemNotFound) {
				return nil, echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
			}
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if item.Kind != kind {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "catalog item kind mismatch")
		}
		return item, nil
	}
	if kind == catalog.KindMedicine && req.ItemTitle != "" {
		item, err := h.catalog.CreateMedicine(c.Request().Context(), req.ItemTitle)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return item, nil
	}
	return nil, echo.NewHTTPError(http.StatusBadRequest, "item_id is required")
}

func parseFoodTimings(raw []string) ([]FoodTiming, error) {
	var out []FoodTiming
	for _, s := range raw {
		ft, err := ParseFoodTiming(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ft)
	}
	return out, nil
}

// ListAssignments handles GET /patients/:patientID/assignments with an
// optional ?q= title filter. Insertion order is preserved.
func (h *Handler) ListAssignments(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context(), c.Param("patientID"), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	p := pagination.FromContext(c)
	total := len(list)
	if p.Offset < total {
		end := p.Offset + p.Limit
		if end > total {
			end = total
		}
		list = list[p.Offset:end]
	} else {
		list = nil
	}

	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, p.Limit, p.Offset))
}

// GetAssignment handles GET /assignments/:id.
func (h *Handler) GetAssignment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "assignment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

// RemoveAssignment handles DELETE /assignments/:id. Removing an absent id
// succeeds: the collection treats it as a no-op.
func (h *Handler) RemoveAssignment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Remove(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type scheduleRequest struct {
	Kind     string       `json:"kind"`
	Schedule schedule.Raw `json:"schedule"`
}

// ValidateSchedule handles POST /schedule/validate: a dry run returning the
// field errors and clamp notices the client renders inline.
func (h *Handler) ValidateSchedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := schedule.Validate(req.Schedule, kind.SchedulePolicy())
	if !res.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, validationFailure{
			Errors:  res.Errors,
			Notices: res.Notices,
		})
	}
	return c.JSON(http.StatusOK, res)
}

// previewResponse pairs the validated spec with its expansion.
type previewResponse struct {
	Spec        schedule.Spec              `json:"spec"`
	Occurrences []schedule.Occurrence      `json:"occurrences"`
	Notices     []schedule.ValidationError `json:"notices,omitempty"`
}

// PreviewSchedule handles POST /schedule/preview: validates, then expands the
// occurrence sequence so the client can show the concrete dates.
func (h *Handler) PreviewSchedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := schedule.Validate(req.Schedule, kind.SchedulePolicy())
	if !res.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, validationFailure{
			Errors:  res.Errors,
			Notices: res.Notices,
		})
	}

	occ, err := schedule.Expand(res.Spec)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, previewResponse{
		Spec:        res.Spec,
		Occurrences: occ,
		Notices:     res.Notices,
	})
}
