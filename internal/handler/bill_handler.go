package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bill_tracker/internal/model"
	"bill_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const msgAmountOutOfRange = "Amount must not exceed 1000000000000 or have more than 2 decimal places."

// groupOption is one entry of the group selector
type groupOption struct {
	ID       int
	Label    string
	Selected bool
}

// BillHandler serves the per-group bill page
type BillHandler struct {
	bills  service.BillService
	groups service.GroupService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills service.BillService, groups service.GroupService) *BillHandler {
	return &BillHandler{bills: bills, groups: groups}
}

func (h *BillHandler) ListBills(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		notFound(c)
		return
	}
	h.renderBills(c, groupID, model.BillForm{Group: strconv.Itoa(groupID)}, fieldErrors{})
}

func (h *BillHandler) CreateBill(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		notFound(c)
		return
	}

	var form model.BillForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	if len(errs) == 0 {
		// Both values passed the number/decimal rules above.
		amount, _ := decimal.NewFromString(strings.TrimSpace(form.Amount))
		target, convErr := strconv.Atoi(form.Group)
		if convErr != nil {
			errs.add("group", "Not a valid choice")
			h.renderBills(c, groupID, form, errs)
			return
		}

		_, err := h.bills.CreateBill(c.Request.Context(), target, form.Description, amount)
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			errs.add("group", "Not a valid choice")
		case errors.Is(err, service.ErrInvalidAmount):
			errs.add("amount", "Amount must be greater than zero.")
		case errors.Is(err, service.ErrAmountOutOfRange):
			errs.add("amount", msgAmountOutOfRange)
		case err != nil:
			serverError(c, err)
			return
		default:
			redirect(c, c.Request.URL.RequestURI())
			return
		}
	}

	h.renderBills(c, groupID, form, errs)
}

func (h *BillHandler) renderBills(c *gin.Context, groupID int, form model.BillForm, errs fieldErrors) {
	ctx := c.Request.Context()

	group, err := h.groups.GetGroup(ctx, groupID)
	if err != nil && !errors.Is(err, service.ErrGroupNotFound) {
		serverError(c, err)
		return
	}

	bills, err := h.bills.ListBills(ctx, groupID)
	if err != nil {
		serverError(c, err)
		return
	}

	groups, err := h.groups.ListGroups(ctx)
	if err != nil {
		serverError(c, err)
		return
	}
	options := lo.Map(groups, func(g model.Group, _ int) groupOption {
		return groupOption{ID: g.ID, Label: g.Name, Selected: strconv.Itoa(g.ID) == form.Group}
	})

	render(c, http.StatusOK, "bills.html", "Bills", gin.H{
		"Number":       groupID,
		"Group":        group,
		"Bills":        bills,
		"Total":        model.SumAmounts(bills).String(),
		"GroupOptions": options,
		"Form":         form,
		"Errors":       errs,
	})
}

func groupIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	return int(id), err == nil
}

// requireGroupID answers 404 for paths that cannot name a group, before the
// login gate sees them.
func requireGroupID(c *gin.Context) {
	if _, ok := groupIDParam(c); !ok {
		notFound(c)
		c.Abort()
	}
}

// RegisterBillRoutes registers the per-group bill page
func (h *BillHandler) RegisterBillRoutes(rg *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	rg.GET("/:id", requireGroupID, requireLogin, h.ListBills)
	rg.POST("/:id", requireGroupID, requireLogin, h.CreateBill)
}
