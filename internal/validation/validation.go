// Package validation carries per-field validation failures from domain
// services to the HTTP boundary.
package validation

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors aggregates every failing field of a request. The operation is
// aborted before any write when this is returned.
type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (e *Errors) Error() string {
	return "validation error"
}

// Add appends a field failure.
func (e *Errors) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// Empty reports whether no field failed.
func (e *Errors) Empty() bool {
	return len(e.Fields) == 0
}

// New builds a single-field validation error.
func New(field, code, message string) *Errors {
	errs := &Errors{}
	errs.Add(field, code, message)
	return errs
}
