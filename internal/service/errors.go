// Package service implements the reminder, note, and water-counter domain
// logic on top of the shared GORM connection.
package service

import "errors"

// ErrValidation marks a rejected request payload (missing or empty field).
// Handlers translate it to a 400 response.
var ErrValidation = errors.New("validation failed")
