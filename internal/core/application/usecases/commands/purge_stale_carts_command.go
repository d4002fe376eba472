package commands

import (
	"errors"
	"fmt"
	"time"

	"ordersapi/internal/pkg/guard"
)

var ErrPurgeStaleCartsCommandIsNotConstructed = errors.New(
	"PurgeStaleCartsCommand must be created via NewPurgeStaleCartsCommand constructor",
)

// PurgeStaleCartsCommand removes cart entries that have not been touched for a while.
type PurgeStaleCartsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewPurgeStaleCartsCommand targets entries last updated more than ttl before now.
func NewPurgeStaleCartsCommand(ttl time.Duration, now time.Time) (PurgeStaleCartsCommand, error) {
	if ttl <= 0 {
		return PurgeStaleCartsCommand{}, fmt.Errorf("cart ttl must be positive, got %s", ttl)
	}
	return PurgeStaleCartsCommand{
		cutoff: now.Add(-ttl),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeStaleCartsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeStaleCartsCommandIsNotConstructed)
}

func (c PurgeStaleCartsCommand) Cutoff() time.Time { return c.cutoff }
