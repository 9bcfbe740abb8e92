package model

import "encoding/json"

// PasswordRequest represents a password generation request.
// Pointer fields distinguish a missing field (nil) from its zero value; all three are required.
type PasswordRequest struct {
	Length              *int  `json:"length" validate:"required"`
	IncludeNumbers      *bool `json:"include_numbers" validate:"required"`
	IncludeSpecialChars *bool `json:"include_special_chars" validate:"required"`
}

// PasswordResponse is the envelope returned for every well-formed request.
// It encodes as {password, success: true} or {error, success: false}.
type PasswordResponse struct {
	Password string `json:"password"`
	Error    string `json:"error"`
	Success  bool   `json:"success"`
}

// MarshalJSON emits only the field that matches Success, so an empty
// password is still reported as "password": "".
func (r PasswordResponse) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Password string `json:"password"`
			Success  bool   `json:"success"`
		}{r.Password, true})
	}
	return json.Marshal(struct {
		Error   string `json:"error"`
		Success bool   `json:"success"`
	}{r.Error, false})
}

// MessageResponse is returned by the liveness probe.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationError describes a request that could not be decoded into a PasswordRequest.
type ValidationError struct {
	Detail []ValidationIssue `json:"detail"`
}

// ValidationIssue points at one offending location in the request body.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}
