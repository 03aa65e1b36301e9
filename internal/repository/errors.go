// Package repository implements persistence over MySQL.  Sentinel
// errors defined here let handlers map failures onto HTTP statuses
// without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when a user insert collides with the
// unique email key.  Handlers translate this into a 409.
var ErrEmailExists = errors.New("email already exists")
