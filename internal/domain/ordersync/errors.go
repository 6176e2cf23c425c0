package ordersync

import "errors"

var (
	// ErrUnauthorizedGroup indicates an unknown group or a secret mismatch.
	// The two cases are deliberately indistinguishable to the caller.
	ErrUnauthorizedGroup = errors.New("ordersync: group authorization failed")

	// ErrInvalidBatch indicates a structurally invalid batch (missing shop,
	// missing platform, empty transaction list).
	ErrInvalidBatch = errors.New("ordersync: invalid batch")

	// ErrUnknownPlatform indicates a platform string outside the allowed set.
	ErrUnknownPlatform = errors.New("ordersync: unknown platform")

	// ErrMissingOrderID marks a transaction without an order ID. Such a
	// transaction is skipped, not failed: the batch continues without it.
	ErrMissingOrderID = errors.New("ordersync: transaction missing order id")

	// ErrStorage indicates a failure during the write phase. The enclosing
	// batch transaction has been rolled back when this is returned.
	ErrStorage = errors.New("ordersync: storage failure")
)
