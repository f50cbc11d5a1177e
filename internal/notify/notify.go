// Package notify turns a finished report into at most one outbound
// alert per pass and delivers it to the configured sinks. Delivery is
// best-effort: the pass's exit code is the durable health signal, the
// message channel is not.
package notify

import (
	"context"

	"go.uber.org/multierr"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans one message out to several sinks. All sinks are attempted;
// their errors are combined rather than short-circuited.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, title, text))
	}
	return errs
}
