// Package sink replays inputevent.Wire events received by the client as
// synthetic OS keyboard/mouse input.
package sink

import (
	"context"

	"github.com/kafji/terong-relay/internal/inputevent"
)

// Run creates the platform's virtual input device and replays events from
// in until ctx is cancelled or in is closed.
func Run(ctx context.Context, in <-chan inputevent.Wire) error {
	return run(ctx, in)
}
