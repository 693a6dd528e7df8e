package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]any{
				"error": err,
			},
		}
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.invalidType",
			Message: fmt.Sprintf("The request body parameter '%s' could not be assigned to the required type (%s).", name, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"expected_type": expectedType,
			},
		}
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.missing",
			Message: fmt.Sprintf("The request body parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errRequestBodyParameterTooLong = func(name string, length, max int) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.string.tooLong",
			Message: fmt.Sprintf("The request body parameter '%s' is too long (%d [given] > %d [max]).", name, length, max),
			Details: map[string]any{
				"parameter": name,
				"length":    length,
				"max":       max,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
// Struct fields tagged with required:"true" have to be pointers; string fields may carry a max_length tag.
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
		}
		return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
	}

	errs, err := validateStruct(target)
	if err != nil {
		return nil, nil, err
	}
	return target, errs, nil
}

func validateStruct(val any) ([]*Error, error) {
	ref := reflect.ValueOf(val)
	if ref.Kind() == reflect.Pointer {
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateStruct with non-struct parameter")
	}
	typ := ref.Type()

	var errs []*Error
	for i := 0; i < typ.NumField(); i++ {
		fieldDef := typ.Field(i)
		fieldName := getFieldName(fieldDef)
		field := ref.Field(i)

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if strings.EqualFold(fieldDef.Tag.Get("required"), "true") {
					errs = append(errs, errRequestBodyParameterMissing(fieldName))
				}
				continue
			}
			field = field.Elem()
		}

		if field.Kind() == reflect.String {
			max, err := strconv.Atoi(fieldDef.Tag.Get("max_length"))
			if err == nil && field.Len() > max {
				errs = append(errs, errRequestBodyParameterTooLong(fieldName, field.Len(), max))
			}
		}
	}
	return errs, nil
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}
