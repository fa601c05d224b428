package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bill_tracker/internal/model"
	"bill_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler serves the group listing page
type GroupHandler struct {
	service service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(s service.GroupService) *GroupHandler {
	return &GroupHandler{service: s}
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	h.renderGroups(c, model.GroupForm{}, fieldErrors{})
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var form model.GroupForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	if len(errs) == 0 {
		number, convErr := strconv.Atoi(form.Number)
		if convErr != nil {
			errs.add("number", "Not a valid integer value.")
			h.renderGroups(c, form, errs)
			return
		}

		_, err := h.service.CreateGroup(c.Request.Context(), number, form.Name)
		switch {
		case errors.Is(err, service.ErrInvalidGroupNumber):
			errs.add("number", "Group number must not be zero.")
		case err != nil:
			serverError(c, err)
			return
		default:
			redirect(c, groupsLocation)
			return
		}
	}

	h.renderGroups(c, form, errs)
}

func (h *GroupHandler) renderGroups(c *gin.Context, form model.GroupForm, errs fieldErrors) {
	groups, err := h.service.ListGroups(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "groups.html", "Groups", gin.H{
		"Groups": groups,
		"Form":   form,
		"Errors": errs,
	})
}

// RegisterGroupRoutes registers the group page
func (h *GroupHandler) RegisterGroupRoutes(rg *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	rg.GET("/groups", requireLogin, h.ListGroups)
	rg.POST("/groups", requireLogin, h.CreateGroup)
}
