package validation

import "strings"

// minPasswordLength is enforced at create/edit time only; it is not a
// stored invariant of the agent collection.
const minPasswordLength = 6

// CreateAgentRequest mirrors the fields needed for create agent validation.
type CreateAgentRequest struct {
	Username string
	Password string
}

// UpdateAgentRequest mirrors the fields needed for update agent validation.
// An empty password means "keep the current one".
type UpdateAgentRequest struct {
	Username string
	Password string
}

// ValidateCreateAgentRequest validates the fields of a create agent request.
func ValidateCreateAgentRequest(req CreateAgentRequest) []FieldError {
	var errs []FieldError

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	} else if len(username) > 64 {
		errs = append(errs, FieldError{Field: "username", Message: "username must be at most 64 characters"})
	}

	password := strings.TrimSpace(req.Password)
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if len(password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errs
}

// ValidateUpdateAgentRequest validates the fields of an update agent request.
func ValidateUpdateAgentRequest(req UpdateAgentRequest) []FieldError {
	var errs []FieldError

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	} else if len(username) > 64 {
		errs = append(errs, FieldError{Field: "username", Message: "username must be at most 64 characters"})
	}

	if password := strings.TrimSpace(req.Password); password != "" && len(password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errs
}
