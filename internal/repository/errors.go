// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values shared across the
// repositories so handlers can map failure scenarios onto HTTP statuses
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrEmailExists is returned when a user registration collides with an
// existing email address. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user row matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrHiveNotFound is returned when a hive cannot be found in the DB.
// Handlers translate this into HTTP 404.
var ErrHiveNotFound = errors.New("hive not found")

// ErrHiveNameExists is returned when an insert or update violates the
// (owner_id, name) uniqueness constraint. Handlers translate this into
// HTTP 409 rather than a generic 500.
var ErrHiveNameExists = errors.New("hive name already exists")
