package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/honeyflow/hive-api/internal/auth"
	"github.com/honeyflow/hive-api/internal/middleware"
	"github.com/honeyflow/hive-api/internal/model"
	"github.com/honeyflow/hive-api/internal/queue"
	"github.com/honeyflow/hive-api/internal/repository"
)

// HiveStore is the persistence surface the hive endpoints need. It is
// implemented by repository.HiveRepo; tests substitute fakes.
type HiveStore interface {
	Create(ctx context.Context, h *model.Hive) (*model.Hive, error)
	GetByID(ctx context.Context, id uint64) (*model.Hive, error)
	ListAll(ctx context.Context) ([]*model.Hive, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hive, error)
	Update(ctx context.Context, h *model.Hive) (*model.Hive, error)
	Delete(ctx context.Context, id uint64) error
}

// CommentStore loads the comments included with a single hive.
type CommentStore interface {
	ListByHive(ctx context.Context, hiveID uint64) ([]model.Comment, error)
}

// EventPublisher emits hive change events after successful mutations.
// Publishing is best-effort: failures never affect the request outcome.
type EventPublisher interface {
	PublishHiveChanged(ctx context.Context, ev queue.HiveChangedEvent) error
}

// HiveHandler bundles dependencies for the hive CRUD endpoints. Events may
// be nil, in which case no events are emitted.
type HiveHandler struct {
	Hives    HiveStore
	Comments CommentStore
	Events   EventPublisher
}

func NewHiveHandler(hives HiveStore, comments CommentStore, events EventPublisher) *HiveHandler {
	if hives == nil || comments == nil {
		panic("nil store passed to NewHiveHandler")
	}
	return &HiveHandler{Hives: hives, Comments: comments, Events: events}
}

type createHiveReq struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
	Strength any     `json:"strength"`
}

// List handles GET /v1/hives. The response depends on the caller's role:
// ASSOCIATION_REP receives aggregate statistics and never raw records,
// BEEKEEPER receives only owned records, ADMIN receives everything.
func (h *HiveHandler) List(c echo.Context) error {
	ident := middleware.IdentityFrom(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch auth.ListScope(ident) {
	case auth.ScopeAggregate:
		hives, err := h.Hives.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"stats": buildHiveStats(hives)})
	case auth.ScopeAll:
		hives, err := h.Hives.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"hives": nonNil(hives)})
	case auth.ScopeOwned:
		hives, err := h.Hives.ListByOwner(ctx, ident.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"hives": nonNil(hives)})
	default:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
}

// Create handles POST /v1/hives.
func (h *HiveHandler) Create(c echo.Context) error {
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	if !auth.CanCreate(ident) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}

	var req createHiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field: name"})
	}
	strength, ok := coerceStrength(req.Strength)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Strength must be a number 0-10"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Hives.Create(ctx, &model.Hive{
		Name:     name,
		Location: req.Location,
		Status:   req.Status,
		Strength: strength,
		OwnerID:  ident.UserID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrHiveNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Hive name already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	h.publish(c, "created", created, ident)
	return c.JSON(http.StatusCreated, echo.Map{"hive": created})
}

// Get handles GET /v1/hives/:id. The id is validated before any auth or
// lookup; authorization requires ownership or the ADMIN role.
func (h *HiveHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hive, err := h.Hives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHiveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	if !auth.CanReadOne(ident, hive.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}

	comments, err := h.Comments.ListByHive(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	hive.Comments = comments
	return c.JSON(http.StatusOK, echo.Map{"hive": hive})
}

// Update handles PUT /v1/hives/:id. Updates are partial: omitted fields
// keep their stored values, explicit nulls clear location/status/strength,
// and a strength outside [0,10] rejects the whole request before any write.
func (h *HiveHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Hives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHiveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	if !auth.CanMutate(ident, existing.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	merged := *existing
	if v, present := body["name"]; present {
		// Only a non-empty string replaces the stored name.
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			merged.Name = strings.TrimSpace(s)
		}
	}
	if v, present := body["location"]; present {
		loc, ok := optionalString(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
		}
		merged.Location = loc
	}
	if v, present := body["status"]; present {
		st, ok := optionalString(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
		}
		merged.Status = st
	}
	if v, present := body["strength"]; present {
		strength, ok := coerceStrength(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Strength must be a number 0-10"})
		}
		merged.Strength = strength
	}

	updated, err := h.Hives.Update(ctx, &merged)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHiveNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		case errors.Is(err, repository.ErrHiveNameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Hive name already in use"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
	}

	h.publish(c, "updated", updated, ident)
	return c.JSON(http.StatusOK, echo.Map{"hive": updated})
}

// Delete handles DELETE /v1/hives/:id.
func (h *HiveHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Hives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHiveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	if !auth.CanMutate(ident, existing.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}

	if err := h.Hives.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHiveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	h.publish(c, "deleted", existing, ident)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *HiveHandler) publish(c echo.Context, action string, hive *model.Hive, ident *auth.Identity) {
	if h.Events == nil {
		return
	}
	_ = h.Events.PublishHiveChanged(c.Request().Context(), queue.HiveChangedEvent{
		Action:     action,
		HiveID:     hive.ID,
		OwnerID:    hive.OwnerID,
		ActorID:    ident.UserID,
		ActorRole:  string(ident.Role),
		Name:       hive.Name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// coerceStrength turns a raw JSON strength value into a validated *int.
// Absent values (nil) and blank strings mean "no strength". Numbers and
// numeric strings must be integer-valued and within [0,10]; everything else
// fails validation.
func coerceStrength(v any) (*int, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, false
		}
		return intStrength(f)
	case float64:
		return intStrength(t)
	default:
		return nil, false
	}
}

func intStrength(f float64) (*int, bool) {
	if math.IsNaN(f) || f != math.Trunc(f) || f < 0 || f > 10 {
		return nil, false
	}
	n := int(f)
	return &n, true
}

// optionalString maps a JSON value onto *string: null clears, a string
// sets, anything else is invalid.
func optionalString(v any) (*string, bool) {
	if v == nil {
		return nil, true
	}
	if s, ok := v.(string); ok {
		return &s, true
	}
	return nil, false
}

// nonNil guarantees an empty JSON array instead of null for empty listings.
func nonNil(hives []*model.Hive) []*model.Hive {
	if hives == nil {
		return []*model.Hive{}
	}
	return hives
}
