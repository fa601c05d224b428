package model

import "github.com/shopspring/decimal"

// LoginForm is submitted from the home page
type LoginForm struct {
	Email    string `form:"email" binding:"required,notblank"`
	Password string `form:"password" binding:"required,notblank"`
}

// RegisterForm is submitted from the registration page
type RegisterForm struct {
	Name            string `form:"name" binding:"required,notblank,max=20"`
	Email           string `form:"email" binding:"required,email,max=120"`
	Password        string `form:"password" binding:"required,notblank,maxbytes=72"`
	ConfirmPassword string `form:"confirm_password" binding:"eqfield=Password"`
}

// GroupForm creates a group. Number is kept as text so a non-numeric value
// surfaces as a field error instead of a binding failure; the integer rule
// accepts negative values and bounds it to 32 bits.
type GroupForm struct {
	Number string `form:"number" binding:"required,integer"`
	Name   string `form:"name" binding:"required,notblank"`
}

// BillForm creates a bill inside a group
type BillForm struct {
	Description string `form:"description" binding:"required,notblank"`
	Amount      string `form:"amount" binding:"required,max=32,decimal"`
	Group       string `form:"group" binding:"required,integer"`
}

// API request bodies

type RegisterRequest struct {
	Name            string `json:"name" binding:"required,notblank,max=20"`
	Email           string `json:"email" binding:"required,email,max=120"`
	Password        string `json:"password" binding:"required,notblank,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" binding:"eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required,notblank"`
}

type CreateGroupRequest struct {
	Number int    `json:"number" binding:"required"`
	Name   string `json:"name" binding:"required,notblank"`
}

type CreateBillRequest struct {
	Description string          `json:"description" binding:"required,notblank"`
	Amount      decimal.Decimal `json:"amount"`
}
