package httpx

import "net/http"

const (
	StatusOK              = http.StatusOK                  // Successful request
	StatusCreated         = http.StatusCreated             // Resource created
	StatusSeeOther        = http.StatusSeeOther            // Post-login redirect
	StatusFound           = http.StatusFound               // Gate redirect to login
	StatusBadRequest      = http.StatusBadRequest          // Validation or malformed input
	StatusUnauthorized    = http.StatusUnauthorized        // Missing or invalid authentication
	StatusForbidden       = http.StatusForbidden           // Authenticated but lacks permission
	StatusNotFound        = http.StatusNotFound            // Resource not found
	StatusConflict        = http.StatusConflict            // Uniqueness conflict
	StatusTooManyRequests = http.StatusTooManyRequests     // Login throttle engaged
	StatusInternalError   = http.StatusInternalServerError // Unexpected server error
)
