package envelope

import "sync"

// FormatContext supplies human-readable names for the small registries
// an envelope's CBOR form doesn't carry on its own: tag numbers and
// known values. It is built once per process, on first use. It is not
// read-only afterwards: RegisterKnownValueName/RegisterTagName add or
// replace names at any time, and every read and write takes its mutex.
type FormatContext struct {
	mu          sync.Mutex
	tags        map[uint64]string
	knownValues map[uint64]string
}

func newFormatContext() *FormatContext {
	return &FormatContext{
		tags: map[uint64]string{
			200: "envelope",
			24:  "leaf",
			201: "wrapped-envelope",
			202: "known-value",
			203: "assertion",
			204: "encrypted",
			205: "compressed",
			206: "digest",
		},
		knownValues: map[uint64]string{
			uint64(KnownValueSalt): "salt",
		},
	}
}

// NameForTag returns the registered name for a CBOR tag number, if any.
func (f *FormatContext) NameForTag(n uint64) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.tags[n]
	return name, ok
}

// NameForKnownValue returns the registered name for a known value, if
// any.
func (f *FormatContext) NameForKnownValue(n uint64) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.knownValues[n]
	return name, ok
}

// RegisterKnownValueName adds or replaces the display name for a
// known value. Safe to call concurrently.
func (f *FormatContext) RegisterKnownValueName(n uint64, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.knownValues[n] = name
}

// RegisterTagName adds or replaces the display name for a CBOR tag.
// Safe to call concurrently.
func (f *FormatContext) RegisterTagName(n uint64, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags[n] = name
}

var (
	formatContextOnce sync.Once
	formatContext     *FormatContext
)

// GetFormatContext returns the process-wide FormatContext singleton,
// initializing it on first use.
func GetFormatContext() *FormatContext {
	formatContextOnce.Do(func() {
		formatContext = newFormatContext()
	})
	return formatContext
}
