//go:build !linux && !windows

package source

import (
	"context"
	"fmt"
	"runtime"
)

func run(ctx context.Context, devices Devices, onEvent OnInputEventFunc) error {
	return fmt.Errorf("input source: unsupported platform %q", runtime.GOOS)
}
