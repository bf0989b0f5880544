package steam

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRetriesExhausted  = errors.New("retries exhausted")
	ErrMarkerNotFound    = errors.New("marker not found")
	ErrClassIDNotFound   = errors.New("classid not found")
	ErrNoBreadcrumbs     = errors.New("no breadcrumbs")
	ErrUnknownLayout     = errors.New("unknown page layout")
	ErrCollectionTooDeep = errors.New("collection nested too deep")
	ErrMissingField      = errors.New("missing field")
)

// MarketAPIError is returned by every accessor when a request could not be
// completed or its response could not be interpreted.
type MarketAPIError struct {
	Op   string
	Args []any
	Err  error
}

func NewMarketAPIError(op string, err error, args ...any) *MarketAPIError {
	return &MarketAPIError{Op: op, Args: args, Err: err}
}

func (e *MarketAPIError) Error() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("steam %s(%s): %v", e.Op, strings.Join(args, ", "), e.Err)
}

func (e *MarketAPIError) Unwrap() error {
	return e.Err
}

// InvalidInventoryError means the platform answered but flagged the inventory as
// unavailable (private profile, wrong app or context).
type InvalidInventoryError struct {
	OwnerID   string
	AppID     int
	ContextID int
}

func (e *InvalidInventoryError) Error() string {
	return fmt.Sprintf(
		"invalid inventory for owner %s (app %d, context %d)",
		e.OwnerID, e.AppID, e.ContextID,
	)
}
