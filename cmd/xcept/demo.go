package main

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/xcept/bridge"
	"github.com/deepnoodle-ai/xcept/ffi"
)

type scenario struct {
	name string
	run  func() error
}

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the boundary-crossing scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
			pass := color.New(color.FgGreen).SprintFunc()
			fail := color.New(color.FgRed).SprintFunc()

			failures := 0
			for _, s := range scenarios {
				if err := s.run(); err != nil {
					failures++
					fmt.Printf("%s %s: %v\n", fail("FAIL"), s.name, err)
				} else {
					fmt.Printf("%s %s\n", pass("ok"), s.name)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failures, len(scenarios))
			}
			return nil
		},
	}
}

var scenarios = []scenario{
	{"message round-trip", demoMessageRoundTrip},
	{"foreign passthrough", demoForeignPassthrough},
	{"unknown-exception placeholder", demoUnknownPlaceholder},
	{"leak check", demoLeakCheck},
}

// A native exception raised inside the protected region comes back to the
// foreign caller as a box whose description matches the original message.
func demoMessageRoundTrip() error {
	var caughtForeign bool
	h := ffi.Capture(func(unsafe.Pointer) {
		ffi.RaiseTestException("temperature out of range")
	}, nil, &caughtForeign)
	if h.IsZero() || caughtForeign {
		return fmt.Errorf("expected a captured native exception")
	}
	ref := ffi.BoxRef(h.Data)
	defer ffi.Destroy(ref)
	if got := ffi.Describe(ref); got != "temperature out of range" {
		return fmt.Errorf("message mangled in transit: %q", got)
	}
	return nil
}

// A foreign exception passes through two nested trampolines bit-identical.
func demoForeignPassthrough() error {
	original := bridge.ForeignHandle{Data: 0x1020304050, Type: 0x6070809000}
	var caughtOuter bool
	outer := ffi.Capture(func(unsafe.Pointer) {
		var caughtInner bool
		inner := ffi.Capture(func(unsafe.Pointer) {
			ffi.RaiseForeign(original)
		}, nil, &caughtInner)
		if !caughtInner {
			panic("inner trampoline lost the foreign exception")
		}
		ffi.RaiseForeign(inner)
	}, nil, &caughtOuter)
	if !caughtOuter || outer != original {
		return fmt.Errorf("handle corrupted in transit: %#x/%#x", outer.Data, outer.Type)
	}
	return nil
}

// Panic values with no message capability surface as a constant placeholder.
func demoUnknownPlaceholder() error {
	var caughtForeign bool
	h := ffi.Capture(func(unsafe.Pointer) {
		panic(struct{ code int }{code: 13})
	}, nil, &caughtForeign)
	ref := ffi.BoxRef(h.Data)
	defer ffi.Destroy(ref)
	if got := ffi.Describe(ref); got != "<unknown exception>" {
		return fmt.Errorf("unexpected placeholder: %q", got)
	}
	return nil
}

// After the scenarios above, every captured box has been destroyed.
func demoLeakCheck() error {
	return ffi.CheckLeaks()
}
