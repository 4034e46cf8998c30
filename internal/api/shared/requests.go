package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBodyBytes bounds the decoded request body. Generation
// requests are small structured DTOs; anything near this limit is not a
// legitimate request.
const maxRequestBodyBytes = 1 << 20

// validate is shared across handlers. A validator instance caches struct
// metadata, so one instance serves every DTO.
var validate = validator.New()

// DecodeJSON decodes the request body into dst. Unknown fields are
// rejected so a misspelled field in a generation request fails loudly
// instead of silently defaulting.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// ValidateRequest runs the DTO's own Validate method when it declares
// one, and falls back to struct tag validation otherwise.
func ValidateRequest(dst interface{}) error {
	if v, ok := dst.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return validate.Struct(dst)
}
