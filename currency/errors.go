package currency

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrKeyConflict     = errors.New("currency already has a different key")
	ErrInvalidRecord   = errors.New("invalid currency record")
	ErrMissingIDs      = errors.New("currencies are missing short ids, run gocyids to assign them")
	ErrDuplicateID     = errors.New("duplicate currency id")
)

// LoadError is returned by Load when the currency sources can not be turned into a registry.
// Every problem found during the load is collected, use errors.Is to look for a particular one
type LoadError struct {
	// Missing ISO codes of the currencies without a short id
	Missing []string

	errs *multierror.Error
}

func newLoadError(errs *multierror.Error, missing []string) *LoadError {
	errs.ErrorFormat = joinErrorsFunc
	return &LoadError{Missing: missing, errs: errs}
}

func (e *LoadError) Error() string {
	return "load currencies: " + e.errs.Error()
}

func (e *LoadError) Unwrap() error {
	return e.errs.Unwrap()
}

// Errors returns every collected problem
func (e *LoadError) Errors() []error {
	return e.errs.WrappedErrors()
}

func joinErrorsFunc(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}
