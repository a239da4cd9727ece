package commands

import (
	"errors"
	"time"

	"cvneat/internal/pkg/guard"
)

var (
	ErrExpireOrdersCommandIsNotConstructed = errors.New(
		"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
	)
	ErrExpirationIsRequired = errors.New("expiration duration must be positive")
)

// ExpireOrdersCommand represents one sweep for unclaimed ready orders: every
// order that has been waiting for a courier longer than the expiration window
// gets cancelled.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	expiration time.Duration

	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand creates a command for one expiration sweep.
func NewExpireOrdersCommand(expiration time.Duration) (ExpireOrdersCommand, error) {
	cmd := ExpireOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setExpiration(expiration); err != nil {
		return ExpireOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

// Expiration returns how long a ready order may wait before it is cancelled.
func (c ExpireOrdersCommand) Expiration() time.Duration {
	return c.expiration
}

func (c *ExpireOrdersCommand) setExpiration(expiration time.Duration) error {
	if expiration <= 0 {
		return ErrExpirationIsRequired
	}

	c.expiration = expiration
	return nil
}
