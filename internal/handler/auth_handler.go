package handler

import (
	"errors"
	"net/http"

	"bill_tracker/internal/middleware"
	"bill_tracker/internal/model"
	"bill_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgLoginFailed = "Login unsuccessful. Check your email and password"
	msgNameTaken   = "User already in use"
	msgEmailTaken  = "Email already in use"
	msgPasswordLen = "Field cannot be longer than 72 bytes."
	msgRegistered  = "Your account has been created. You can now log in."
	msgLoggedOut   = "You have been logged out."
	groupsLocation = "/groups"
	loginLocation  = "/"
)

// AuthHandler serves the login, registration and logout pages
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, groupsLocation)
		return
	}
	render(c, http.StatusOK, "index.html", "Log in", gin.H{"Form": model.LoginForm{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, groupsLocation)
		return
	}

	var form model.LoginForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}
	data := gin.H{"Form": model.LoginForm{Email: form.Email}, "Errors": errs}
	if len(errs) > 0 {
		render(c, http.StatusOK, "index.html", "Log in", data)
		return
	}

	user, err := h.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.AddFlash(c, middleware.FlashDanger, msgLoginFailed)
			render(c, http.StatusOK, "index.html", "Log in", data)
			return
		}
		serverError(c, err)
		return
	}

	if err := middleware.Login(c, user); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, safeNext(c.Query("next"), groupsLocation))
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, loginLocation)
		return
	}
	render(c, http.StatusOK, "register.html", "Register", gin.H{"Form": model.RegisterForm{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, loginLocation)
		return
	}

	var form model.RegisterForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}
	ctx := c.Request.Context()

	if len(errs) == 0 {
		_, err = h.service.Register(ctx, form.Name, form.Email, form.Password)
	} else {
		// Uniqueness is still reported for fields that passed their own checks.
		var name, email string
		if len(errs["name"]) == 0 {
			name = form.Name
		}
		if len(errs["email"]) == 0 {
			email = form.Email
		}
		err = h.service.CheckAvailability(ctx, name, email)
	}

	if err != nil && !addRegisterErrors(errs, err) {
		serverError(c, err)
		return
	}
	if len(errs) > 0 {
		render(c, http.StatusOK, "register.html", "Register", gin.H{
			"Form":   model.RegisterForm{Name: form.Name, Email: form.Email},
			"Errors": errs,
		})
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, msgRegistered)
	redirect(c, loginLocation)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c, middleware.Flash{Category: middleware.FlashInfo, Message: msgLoggedOut}); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, loginLocation)
}

// addRegisterErrors records the field errors carried by err and reports
// whether there were any.
func addRegisterErrors(errs fieldErrors, err error) bool {
	matched := false
	if errors.Is(err, service.ErrPasswordTooLong) {
		errs.add("password", msgPasswordLen)
		matched = true
	}
	if errors.Is(err, service.ErrNameTaken) {
		errs.add("name", msgNameTaken)
		matched = true
	}
	if errors.Is(err, service.ErrEmailTaken) {
		errs.add("email", msgEmailTaken)
		matched = true
	}
	return matched
}

// RegisterAuthRoutes registers the login, registration and logout pages
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	rg.GET("/", h.LoginPage)
	rg.POST("/", h.Login)
	rg.GET("/register", h.RegisterPage)
	rg.POST("/register", h.Register)
	rg.GET("/logout", requireLogin, h.Logout)
}
