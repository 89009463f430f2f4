package apperrors

import (
	"fmt"
	"net/http"
)

// Error is a terminal request failure carrying the HTTP status and the exact
// message the API contract promises for it. Handlers serialize it as
// {"error": "<message>"}.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// MissingField reports the first required body field that was absent or blank.
func MissingField(field string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Your request body didn't specify a value for '%s'", field),
	}
}

func UnsupportedMediaType() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "Your request didn't include a 'Content-Type: application/json' header",
	}
}

func MalformedBody() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "Your request body isn't valid JSON",
	}
}

// DuplicateUsername is the create-time collision failure.
func DuplicateUsername() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "There already exists a User resource with the username that you provided",
	}
}

// DuplicateEmail is the create-time collision failure.
func DuplicateEmail() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "There already exists a User resource with the email that you provided",
	}
}

// DuplicateUsernameValue is the edit-time collision failure, naming the value.
func DuplicateUsernameValue(username string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("There already exists a User resource with a username of '%s'", username),
	}
}

// DuplicateEmailValue is the edit-time collision failure, naming the value.
func DuplicateEmailValue(email string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("There already exists a User resource with an email of '%s'", email),
	}
}

// AuthenticationRequired covers requests with no usable Authorization header.
func AuthenticationRequired() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Message: "You must authenticate via Basic authentication",
	}
}

// IncorrectCredentials covers credentials that were presented but rejected.
// Deliberately the same status as AuthenticationRequired, different message.
func IncorrectCredentials() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Message: "You have provided an incorrect email and/or password",
	}
}

func ForbiddenUser() *Error {
	return &Error{
		Status:  http.StatusForbidden,
		Message: "You are not allowed to edit or delete any User resource different from your own",
	}
}

func UserNotFound(id string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("There doesn't exist a User resource with an ID of %s", id),
	}
}

// EntryNotFound covers both a nonexistent entry and an entry owned by someone
// else; the two cases must stay indistinguishable to the caller.
func EntryNotFound(id string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("Your User doesn't have an Entry resource with an ID of %s", id),
	}
}

func InvalidTimezone() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "The value you provided for 'timezone' doesn't match the expected format of '±HH:MM'",
	}
}

func InvalidLocalTime() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "The value you provided for 'localTime' doesn't match the expected format of 'YYYY-MM-DD HH:MM[:SS]'",
	}
}
