package validation

import "github.com/go-playground/validator/v10"

// Validate adalah satu-satunya instance validator; handler dan service
// memakai cache struct yang sama.
var Validate = validator.New()
