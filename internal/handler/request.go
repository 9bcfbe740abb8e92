package handler

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/passgen/passgen-go/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestFields lists the PasswordRequest fields in the order issues are reported.
var requestFields = []string{"length", "include_numbers", "include_special_chars"}

// decodePasswordRequest reads a PasswordRequest from body. It returns a
// ValidationError describing every problem found, along with the underlying
// read or decode error when there was one.
func decodePasswordRequest(body io.Reader) (model.PasswordRequest, *model.ValidationError, error) {
	var req model.PasswordRequest

	dec := json.NewDecoder(body)

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return req, singleIssue([]string{"body"}, "field required", "value_error.missing"), err
		case errors.As(err, &typeErr):
			return req, singleIssue([]string{"body"}, "value is not a valid dict", "type_error.dict"), err
		default:
			return req, singleIssue([]string{"body"}, "invalid JSON body", "value_error.jsondecode"), err
		}
	}

	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, singleIssue([]string{"body"}, "unexpected data after JSON body", "value_error.jsondecode"), err
	}

	issues := make(map[string]model.ValidationIssue)
	targets := map[string]any{
		"length":                &req.Length,
		"include_numbers":       &req.IncludeNumbers,
		"include_special_chars": &req.IncludeSpecialChars,
	}
	for _, field := range requestFields {
		value, ok := raw[field]
		if !ok {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(value, targets[field]); errors.As(err, &typeErr) {
			issues[field] = typeIssue(field, typeErr)
		} else if err != nil {
			issues[field] = model.ValidationIssue{Loc: []string{"body", field}, Msg: "invalid value", Type: "value_error"}
		}
	}

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(req); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if _, seen := issues[fe.Field()]; !seen {
				issues[fe.Field()] = model.ValidationIssue{
					Loc:  []string{"body", fe.Field()},
					Msg:  "field required",
					Type: "value_error.missing",
				}
			}
		}
	}

	if len(issues) == 0 {
		return req, nil, nil
	}

	verr := &model.ValidationError{}
	for _, field := range requestFields {
		if issue, ok := issues[field]; ok {
			verr.Detail = append(verr.Detail, issue)
		}
	}
	return req, verr, nil
}

func typeIssue(field string, err *json.UnmarshalTypeError) model.ValidationIssue {
	issue := model.ValidationIssue{Loc: []string{"body", field}}
	switch err.Type.Kind() {
	case reflect.Int:
		issue.Msg, issue.Type = "value is not a valid integer", "type_error.integer"
	case reflect.Bool:
		issue.Msg, issue.Type = "value could not be parsed to a boolean", "type_error.bool"
	default:
		issue.Msg, issue.Type = "value has the wrong type", "type_error"
	}
	return issue
}

func singleIssue(loc []string, msg, typ string) *model.ValidationError {
	return &model.ValidationError{Detail: []model.ValidationIssue{{Loc: loc, Msg: msg, Type: typ}}}
}
