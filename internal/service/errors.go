package service

import "errors"

var (
	ErrValidation          = errors.New("validation")          // 400
	ErrUnauthorized        = errors.New("unauthorized")        // 401
	ErrNotFound            = errors.New("not found")           // 404
	ErrConflict            = errors.New("conflict")            // 409
	ErrInvalidCredentials  = errors.New("invalid credentials") // 401
	ErrEmailNotVerified    = errors.New("email not verified")  // 401
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidCode         = errors.New("invalid or expired code")
	ErrEmptyCart           = errors.New("empty cart")
	ErrPaymentSession      = errors.New("payment session")
	ErrCheckoutFailed      = errors.New("checkout failed")
)
