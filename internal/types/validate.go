package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json name so validation errors match the wire
	// payload the caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs tag-based constraints and converts the first failure into
// a field-scoped ValidationError.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		return NewValidationError(fe.Field(), fmt.Sprintf("failed %q constraint", constraint))
	}
	return err
}

// strictFields decodes a JSON object rejecting keys outside the allowed set.
// Request models use this; response models tolerate unknown keys instead.
func strictFields(data []byte, model string, allowed ...string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewValidationError(model, "must be a JSON object")
	}
	for key := range raw {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return nil, NewValidationError(model+"."+key, "unknown field")
		}
	}
	return raw, nil
}

// checkSequentialOrder enforces that the given 1-based order values cover
// exactly {1..n} with no gaps or duplicates. Empty input is valid.
func checkSequentialOrder(orders []int, field string) error {
	if len(orders) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(orders))
	for _, o := range orders {
		if o < 1 || o > len(orders) || seen[o] {
			return NewValidationError(field, "must start at 1 and be consecutive")
		}
		seen[o] = true
	}
	return nil
}
