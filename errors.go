package coup

import "github.com/pkg/errors"

// Errors returned by the state machine. Every rejected action leaves the
// state untouched and yields exactly one of these.
var (
	ErrInvalidPlayer  = errors.New("invalid player")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidCard    = errors.New("invalid card")
	ErrInvalidSource  = errors.New("invalid source")
	ErrNotEnoughCoins = errors.New("not enough coins")
	ErrTooManyCoins   = errors.New("too many coins")
	ErrInactivePlayer = errors.New("inactive player")
)
