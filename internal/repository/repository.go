// Package repository implements the SQL-backed entity store. Repositories
// hold no business rules: state transitions and derivations live in the
// service, scoring and views packages.
package repository

import "errors"

// ErrNotFound is returned when the targeted row does not exist
var ErrNotFound = errors.New("record not found")
