package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-issues/internal/api/dto"
	"github.com/spec-kit/civic-issues/internal/api/paging"
	"github.com/spec-kit/civic-issues/internal/domain"
	"github.com/spec-kit/civic-issues/internal/repository"
	"github.com/spec-kit/civic-issues/internal/service"
	apperrors "github.com/spec-kit/civic-issues/pkg/util"
)

// IssuesHandler exposes the issue endpoints.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

// Create handles POST /issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("invalid request body", nil)
	}

	input := service.IssueCreateInput{
		Status:      req.Status,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Geolocation: req.Geolocation,
		Tags:        req.Tags,
		UserID:      req.UserID,
	}
	issue, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewIssueResponse(issue))
}

// List handles GET /issues with user/status filters and pagination.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	filter := parseIssueFilter(c)

	total, err := h.service.Count(c.Context(), filter)
	if err != nil {
		return err
	}

	params, links := paging.Paginate("/issues", total, c.Query("page"), c.Query("pageSize"))
	if header := paging.LinkHeader(links); header != "" {
		c.Set("Link", header)
	}

	filter.Limit = params.Limit
	filter.Offset = params.Skip
	issues, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewIssueResponses(issues))
}

// Get handles GET /issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	issue, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewIssueResponse(issue))
}

// Update handles PATCH /issues/:id.
func (h *IssuesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("invalid request body", nil)
	}

	issue, err := h.service.Update(c.Context(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewIssueResponse(issue))
}

// Delete handles DELETE /issues/:id.
func (h *IssuesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// parseIssueFilter collects the multi-value user and status query filters.
// Malformed identifiers and unknown statuses are dropped, not errored.
func parseIssueFilter(c *fiber.Ctx) repository.IssueFilter {
	filter := repository.IssueFilter{}
	args := c.Context().QueryArgs()

	for _, raw := range args.PeekMulti("user") {
		if id := string(raw); domain.IsValidID(id) {
			filter.UserIDs = append(filter.UserIDs, id)
		}
	}
	for _, raw := range args.PeekMulti("status") {
		if status := domain.IssueStatus(raw); status.Valid() {
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	return filter
}
