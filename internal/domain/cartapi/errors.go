// internal/domain/cartapi/errors.go
package cartapi

import "fmt"

// AddItemError is a non-success response to an add call. Description
// carries the server-supplied reason when the response body had one,
// else a generic fallback.
type AddItemError struct {
	Status      int
	Description string
}

// Error implements the error interface
func (e *AddItemError) Error() string {
	return e.Description
}

// UpdateError is a non-success response to an update or line-change
// call.
type UpdateError struct {
	Status int
}

// Error implements the error interface
func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update cart (status %d)", e.Status)
}

// errorBody is the shape upstream error responses use. Which field is
// populated varies by endpoint.
type errorBody struct {
	Description string `json:"description"`
	Message     string `json:"message"`
}

const genericAddFailure = "Could not add item to cart"
