package handler

import (
	"errors"
	"net/http"

	"bill_tracker/internal/middleware"
	"bill_tracker/internal/model"
	"bill_tracker/internal/service"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON API
type APIHandler struct {
	auth   service.AuthService
	groups service.GroupService
	bills  service.BillService
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(auth service.AuthService, groups service.GroupService, bills service.BillService) *APIHandler {
	return &APIHandler{auth: auth, groups: groups, bills: bills}
}

func (h *APIHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNameTaken) || errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("error during registration", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *APIHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Error("error during login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *APIHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.auth.IssueToken(user)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(status, gin.H{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"token":   token,
	})
}

func (h *APIHandler) ListGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		log.Error("error listing groups", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}
	if groups == nil {
		groups = []model.Group{}
	}
	c.JSON(http.StatusOK, groups)
}

func (h *APIHandler) CreateGroup(c *gin.Context) {
	var req model.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), req.Number, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGroupNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("error creating group", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}
	log.Info("group created via api", "group_id", group.ID, "user_id", c.GetInt(middleware.AuthUserKey))
	c.JSON(http.StatusCreated, group)
}

func (h *APIHandler) ListBills(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	bills, err := h.bills.ListBills(c.Request.Context(), groupID)
	if err != nil {
		log.Error("error listing bills", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bills"})
		return
	}
	if bills == nil {
		bills = []model.Bill{}
	}
	c.JSON(http.StatusOK, bills)
}

func (h *APIHandler) CreateBill(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req model.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	bill, err := h.bills.CreateBill(c.Request.Context(), groupID, req.Description, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrAmountOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error("error creating bill", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		}
		return
	}
	log.Info("bill created via api", "bill_id", bill.ID, "group_id", groupID, "user_id", c.GetInt(middleware.AuthUserKey))
	c.JSON(http.StatusCreated, bill)
}

// RegisterAPIRoutes registers the JSON API under rg
func (h *APIHandler) RegisterAPIRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	groupsGroup := rg.Group("/groups")
	groupsGroup.Use(jwtAuthMW)
	{
		groupsGroup.GET("", h.ListGroups)
		groupsGroup.POST("", h.CreateGroup)
		groupsGroup.GET("/:id/bills", h.ListBills)
		groupsGroup.POST("/:id/bills", h.CreateBill)
	}
}
