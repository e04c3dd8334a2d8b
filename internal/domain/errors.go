package domain

import (
	"net/http"

	"github.com/Mio254/spacer/pkg/apperror"
)

var (
	ErrInvalidRange = apperror.New(http.StatusBadRequest, "invalid_range", "end_time must be after start_time")
	ErrInvalidInput = apperror.New(http.StatusBadRequest, "invalid_input", "invalid input parameters")

	ErrSpaceNotFound   = apperror.New(http.StatusNotFound, "space_not_found", "space not found")
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrInvoiceNotFound = apperror.New(http.StatusNotFound, "invoice_not_found", "invoice not found")
	ErrUserNotFound    = apperror.New(http.StatusNotFound, "user_not_found", "user not found")

	ErrSpaceInactive   = apperror.New(http.StatusConflict, "space_inactive", "space is not open for booking")
	ErrSlotUnavailable = apperror.New(http.StatusConflict, "slot_unavailable", "time slot unavailable")
	ErrAlreadyPaid     = apperror.New(http.StatusConflict, "already_paid", "booking is already paid")
	ErrAlreadyAccepted = apperror.New(http.StatusConflict, "already_accepted", "agreement already accepted")
	ErrEmailTaken      = apperror.New(http.StatusConflict, "email_taken", "email is already registered")

	ErrNotAuthorized     = apperror.New(http.StatusForbidden, "not_authorized", "not authorized")
	ErrInvalidTransition = apperror.New(http.StatusUnprocessableEntity, "invalid_transition", "invalid status transition")

	ErrPaymentNotSucceeded = apperror.New(http.StatusPaymentRequired, "payment_not_succeeded", "payment has not succeeded")
	ErrUpstream            = apperror.New(http.StatusBadGateway, "upstream_error", "payment processor unavailable")
)
