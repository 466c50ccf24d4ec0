//go:build !linux && !windows

package sink

import (
	"context"
	"fmt"
	"runtime"

	"github.com/kafji/terong-relay/internal/inputevent"
)

func run(ctx context.Context, in <-chan inputevent.Wire) error {
	return fmt.Errorf("input sink: unsupported platform %q", runtime.GOOS)
}
