// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports malformed input. Fields maps the offending input field to a message.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "validation failed",
		Fields:  map[string]string{field: message},
	}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

// ValidationErrorFromValidator converts the errors of the validator package into a ValidationError.
func ValidationErrorFromValidator(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return &ValidationError{Message: "validation failed", Fields: fields}
}

type NotFoundError struct {
	Message string
	Err     error
}

func NewNotFoundError(message string, err error) *NotFoundError {
	return &NotFoundError{Message: message, Err: err}
}

func (e *NotFoundError) Error() string { return wrapMessage(e.Message, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

// AuthorizationError is returned when the caller does not own the requested resource.
type AuthorizationError struct {
	Message string
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

func (e *AuthorizationError) Error() string { return e.Message }

// StorageError wraps failures of the persistent store. The transaction it occurred in was rolled back.
type StorageError struct {
	Message string
	Err     error
}

func NewStorageError(message string, err error) *StorageError {
	return &StorageError{Message: message, Err: err}
}

func (e *StorageError) Error() string { return wrapMessage(e.Message, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// IOError wraps blob or scratch file failures.
type IOError struct {
	Message string
	Err     error
}

func NewIOError(message string, err error) *IOError {
	return &IOError{Message: message, Err: err}
}

func (e *IOError) Error() string { return wrapMessage(e.Message, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

type InternalError struct {
	Message string
	Err     error
}

func NewInternalError(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

func (e *InternalError) Error() string { return wrapMessage(e.Message, e.Err) }
func (e *InternalError) Unwrap() error { return e.Err }

func wrapMessage(message string, err error) string {
	if err == nil {
		return message
	}
	return message + ": " + err.Error()
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

func IsIO(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}
