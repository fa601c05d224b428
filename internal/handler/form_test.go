package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bill_tracker/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindTestForm(t *testing.T, form any, values url.Values) fieldErrors {
	t.Helper()
	require.NoError(t, RegisterValidators())
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	errs, err := bindForm(c, form)
	require.NoError(t, err)
	return errs
}

func TestBindForm_Register(t *testing.T) {
	var form model.RegisterForm
	errs := bindTestForm(t, &form, url.Values{
		"name":             {strings.Repeat("n", 21)},
		"email":            {"not-an-email"},
		"password":         {"p1"},
		"confirm_password": {"p2"},
	})

	assert.Equal(t, []string{"Field cannot be longer than 20 characters."}, errs["name"])
	assert.Equal(t, []string{"Invalid email address."}, errs["email"])
	assert.Equal(t, []string{"Passwords do not match"}, errs["confirm_password"])
	assert.Empty(t, errs["password"])
}

func TestBindForm_Bill(t *testing.T) {
	var form model.BillForm
	errs := bindTestForm(t, &form, url.Values{
		"description": {""},
		"amount":      {"1.2.3"},
		"group":       {"x"},
	})

	assert.Equal(t, []string{"This field is required."}, errs["description"])
	assert.Equal(t, []string{"Not a valid decimal value."}, errs["amount"])
	assert.Equal(t, []string{"Not a valid integer value."}, errs["group"])
}

func TestBindForm_Valid(t *testing.T) {
	var form model.GroupForm
	errs := bindTestForm(t, &form, url.Values{"number": {"3"}, "name": {"G3"}})

	assert.Empty(t, errs)
	assert.Equal(t, "3", form.Number)
	assert.Equal(t, "G3", form.Name)
}

func TestBindForm_BlankValues(t *testing.T) {
	var group model.GroupForm
	errs := bindTestForm(t, &group, url.Values{"number": {"1"}, "name": {"   "}})
	assert.Equal(t, []string{"This field is required."}, errs["name"])

	var login model.LoginForm
	errs = bindTestForm(t, &login, url.Values{"email": {" \t "}, "password": {"  "}})
	assert.Equal(t, []string{"This field is required."}, errs["email"])
	assert.Equal(t, []string{"This field is required."}, errs["password"])

	var bill model.BillForm
	errs = bindTestForm(t, &bill, url.Values{"description": {"  "}, "amount": {"1"}, "group": {"1"}})
	assert.Equal(t, []string{"This field is required."}, errs["description"])
}

func TestBindForm_GroupNumber(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"3", true},
		{"-3", true},
		{"2147483647", true},
		{"2147483648", false},
		{"1.5", false},
		{"abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			var form model.GroupForm
			errs := bindTestForm(t, &form, url.Values{"number": {tt.number}, "name": {"G"}})
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, []string{"Not a valid integer value."}, errs["number"])
			}
		})
	}
}

func TestBindForm_PasswordBytes(t *testing.T) {
	var form model.RegisterForm
	// 40 runes, 80 bytes
	password := strings.Repeat("é", 40)
	errs := bindTestForm(t, &form, url.Values{
		"name":             {"alice"},
		"email":            {"a@x.com"},
		"password":         {password},
		"confirm_password": {password},
	})
	assert.Equal(t, []string{"Field cannot be longer than 72 bytes."}, errs["password"])

	errs = bindTestForm(t, &form, url.Values{
		"name":             {"alice"},
		"email":            {"a@x.com"},
		"password":         {strings.Repeat("x", 72)},
		"confirm_password": {strings.Repeat("x", 72)},
	})
	assert.Empty(t, errs)
}

func TestBindForm_AmountLength(t *testing.T) {
	var form model.BillForm
	errs := bindTestForm(t, &form, url.Values{"description": {"x"}, "amount": {strings.Repeat("1", 33)}, "group": {"1"}})
	assert.Equal(t, []string{"Field cannot be longer than 32 characters."}, errs["amount"])
}
