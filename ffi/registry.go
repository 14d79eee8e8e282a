package ffi

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/xcept/bridge"
)

var logger = zerolog.Nop()

// SetLogger installs a logger for registry diagnostics. Each capture is
// tagged with a UUID so capture and destroy events can be correlated.
func SetLogger(l zerolog.Logger) {
	logger = l
}

type entry struct {
	box       *bridge.Box
	captureID uuid.UUID
	createdAt time.Time
}

// registry maps opaque single-word references to live boxes. It is the only
// shared state in the package; the mutex makes concurrent captures of
// distinct boxes safe, while each individual box still has exactly one live
// owner at a time.
type registry struct {
	mu      sync.Mutex
	nextRef BoxRef
	entries map[BoxRef]*entry
}

var boxes = &registry{entries: map[BoxRef]*entry{}}

func (r *registry) put(box *bridge.Box) BoxRef {
	id := uuid.Must(uuid.NewV4())
	r.mu.Lock()
	r.nextRef++
	ref := r.nextRef
	r.entries[ref] = &entry{box: box, captureID: id, createdAt: time.Now()}
	r.mu.Unlock()
	logger.Debug().
		Str("capture_id", id.String()).
		Str("kind", box.Kind().String()).
		Uint64("ref", uint64(ref)).
		Msg("box registered")
	return ref
}

func (r *registry) get(ref BoxRef) *bridge.Box {
	r.mu.Lock()
	e, ok := r.entries[ref]
	r.mu.Unlock()
	if !ok {
		bridge.ContractViolation("unknown box reference %d", ref)
	}
	return e.box
}

// remove forgets the reference and returns its box. A reference that was
// never issued or was already destroyed is a fatal contract violation: this
// is how a double-free is detected instead of silently corrupting state.
func (r *registry) remove(ref BoxRef) *bridge.Box {
	r.mu.Lock()
	e, ok := r.entries[ref]
	if ok {
		delete(r.entries, ref)
	}
	r.mu.Unlock()
	if !ok {
		bridge.ContractViolation("destroy of unknown box reference %d (double destroy?)", ref)
	}
	logger.Debug().
		Str("capture_id", e.captureID.String()).
		Uint64("ref", uint64(ref)).
		Msg("box released")
	return e.box
}

func (r *registry) checkLeaks() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result *multierror.Error
	for ref, e := range r.entries {
		result = multierror.Append(result, fmt.Errorf(
			"box %d (capture %s, kind %s) captured %s ago was never destroyed",
			ref, e.captureID, e.box.Kind(),
			time.Since(e.createdAt).Round(time.Millisecond)))
	}
	return result.ErrorOrNil()
}

func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
