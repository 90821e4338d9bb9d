package request

import (
	"net/http"
	"regexp"

	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
)

var ErrInvalidDate = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")

// Dates travel as plain local YYYY-MM-DD strings end to end. They are never
// run through UTC-normalizing conversions, which would shift bookings near
// midnight onto the wrong day.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ValidateDate checks the plain-date shape shared by schedule, appointment
// and availability endpoints.
func ValidateDate(date string) error {
	if !dateRe.MatchString(date) {
		return ErrInvalidDate
	}
	return nil
}
