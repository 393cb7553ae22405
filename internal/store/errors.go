package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Code categorizes store failures.
type Code string

const (
	// CodeAlreadyExists indicates creating a database over an existing file.
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// CodeNotFound indicates opening or deleting a database that has no file.
	CodeNotFound Code = "NOT_FOUND"

	// CodeNodeNotExists indicates a lookup by name that missed.
	CodeNodeNotExists Code = "NODE_NOT_EXISTS"

	// CodeFolderNotEmpty indicates deleting a folder that still has children.
	CodeFolderNotEmpty Code = "FOLDER_NOT_EMPTY"

	// CodeConstraintViolation indicates a relational-integrity breach,
	// most commonly a duplicate node name.
	CodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
)

// Error is a typed store failure. Name holds the node name or file path
// involved, when there is one.
type Error struct {
	Code    Code
	Message string
	Name    string
	Err     error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAlreadyExists reports whether err is an ALREADY_EXISTS store error.
// Uses errors.As to handle wrapped errors.
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsNotFound reports whether err is a NOT_FOUND store error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsNodeNotExists reports whether err is a NODE_NOT_EXISTS store error.
func IsNodeNotExists(err error) bool { return hasCode(err, CodeNodeNotExists) }

// IsFolderNotEmpty reports whether err is a FOLDER_NOT_EMPTY store error.
func IsFolderNotEmpty(err error) bool { return hasCode(err, CodeFolderNotEmpty) }

// IsConstraintViolation reports whether err is a CONSTRAINT_VIOLATION store error.
func IsConstraintViolation(err error) bool { return hasCode(err, CodeConstraintViolation) }

func hasCode(err error, code Code) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func newNodeNotExists(name string) *Error {
	return &Error{Code: CodeNodeNotExists, Message: "node does not exist", Name: name}
}

func newFolderNotEmpty(name string) *Error {
	return &Error{Code: CodeFolderNotEmpty, Message: "folder has children", Name: name}
}

// wrapConstraint classifies SQLite constraint failures as
// CONSTRAINT_VIOLATION; anything else is wrapped verbatim.
func wrapConstraint(err error, op string) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return &Error{Code: CodeConstraintViolation, Message: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
