// Package repository implements MySQL persistence for users, refresh
// tokens, the table inventory and reservations.  Sentinel values defined
// here let handlers distinguish failure scenarios; lifecycle-level
// sentinels (not found, forbidden, conflict and friends) live in the
// booking package so the service layer can return them without importing
// this one.
package repository

import (
    "errors"
    "strings"
)

// ErrEmailExists is returned when registering a user whose email is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registering a user whose username
// is already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrTableNumberExists is returned when creating a table whose number
// is already present in the inventory.
var ErrTableNumberExists = errors.New("table number already exists")

// isDuplicate reports whether err is a MySQL duplicate-entry error
// (code 1062), optionally scoped to a key whose name contains keyHint.
func isDuplicate(err error, keyHint string) bool {
    if err == nil {
        return false
    }
    msg := strings.ToLower(err.Error())
    if !strings.Contains(msg, "1062") {
        return false
    }
    return keyHint == "" || strings.Contains(msg, keyHint)
}
