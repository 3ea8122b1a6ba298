// Package keyptr implements the mutable cursor over the 256-bit key space
// that persistent types use to claim their slot range, plus the
// SpreadLayout/PackedLayout protocol markers that describe how a type is
// distributed across (or packed into) those slots.
//
// Go has no associated-constructor / static-trait-method mechanism, so the
// "pull_spread constructs an instance" half of the original protocol is
// expressed as ordinary per-type constructor functions (e.g.
// synccell.PullSpread, lazymap.PullSpread) that take a *KeyPtr, rather than
// as a method on a shared interface. PushSpread and ClearSpread, which
// operate on an existing instance, are expressed as the SpreadLayout
// interface below.
//
// © 2025 contractstore authors. MIT License.
package keyptr

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/voskan/contractstore/pkg/metrics"
	"github.com/voskan/contractstore/pkg/storagekey"
)

// KeyPtr is a cursor over the key space: it holds a current StorageKey and
// advances by a declared footprint (a slot count) on each AdvanceBy call.
//
// Walking past the top of the 2^256 ring wraps the cursor back to zero
// rather than erroring (§4.1) — the wrap itself is always legal, but it
// MUST be observable for logging/diagnostics, since two distinct types
// could otherwise end up claiming the same slot range without anyone
// noticing. logger and metric default to no-ops; WithLogger/WithMetrics
// attach real ones.
type KeyPtr struct {
	cur    storagekey.StorageKey
	logger *zap.Logger
	metric metrics.Sink
}

// New creates a cursor positioned at root, with overflow observation
// disabled (a no-op logger and metrics sink).
func New(root storagekey.StorageKey) *KeyPtr {
	return &KeyPtr{cur: root, logger: zap.NewNop(), metric: metrics.Noop()}
}

// WithLogger attaches logger, which receives a Warn-level log every time
// AdvanceBy wraps the 2^256 ring. Returns p for chaining.
func (p *KeyPtr) WithLogger(logger *zap.Logger) *KeyPtr {
	p.logger = logger
	return p
}

// WithMetrics attaches sink, whose IncOverflowNotice is called every time
// AdvanceBy wraps the 2^256 ring. Returns p for chaining.
func (p *KeyPtr) WithMetrics(sink metrics.Sink) *KeyPtr {
	p.metric = sink
	return p
}

// AdvanceBy returns the current key and then advances the cursor by n
// slots. n is the FOOTPRINT of the type claiming this subrange. If the
// advance wraps the 2^256 ring, the overflow is reported to both the
// attached logger (Warn level) and metrics sink — never swallowed silently.
func (p *KeyPtr) AdvanceBy(n uint64) storagekey.StorageKey {
	current := p.cur
	next, overflowed := p.cur.AddU64(n)
	p.cur = next
	if overflowed {
		p.logger.Warn("storage key arithmetic wrapped the 2^256 ring",
			zap.String("from", fmt.Sprintf("%x", current.Bytes())),
			zap.Uint64("footprint", n),
		)
		p.metric.IncOverflowNotice()
	}
	return current
}

// Current returns the cursor's position without advancing it.
func (p *KeyPtr) Current() storagekey.StorageKey {
	return p.cur
}

// SpreadLayout is implemented by persistent types that can write their
// cached, dirty state back to the slots they were pulled from, and release
// those slots entirely.
type SpreadLayout interface {
	// PushSpread writes the instance's dirty cached state to slots starting
	// at ptr, then advances ptr by the type's FOOTPRINT.
	PushSpread(ptr *KeyPtr) error
	// ClearSpread releases all slots owned by the instance, then advances
	// ptr by the type's FOOTPRINT.
	ClearSpread(ptr *KeyPtr) error
}

// PackedLayout is implemented by value types stored inside a LazyHashMap
// that need to participate in deep clean-up: when their top-level slot is
// cleared, their own child slots (if any) must be released too.
type PackedLayout interface {
	// RequiresDeepCleanUp reports whether clearing this value's slot must
	// also recursively clear storage its instance owns.
	RequiresDeepCleanUp() bool
}
