package savedhi

import "sync"

// globalProvider is a process-wide convenience registration for CLI
// callers that have nowhere better to thread a KeyProvider through.
// Library code should prefer passing a KeyProvider explicitly via
// WriteOptions/ReadOptions; this slot exists only as a compatibility shim
// (spec's global key-provider design note).
var (
	globalProviderMu sync.Mutex
	globalProvider   KeyProvider
)

// RegisterKeyProvider installs provider as the process-wide key provider,
// first unregistering (and discarding) any previously registered provider.
// Safe for concurrent/re-entrant calls.
func RegisterKeyProvider(provider KeyProvider) {
	globalProviderMu.Lock()
	defer globalProviderMu.Unlock()
	globalProvider = provider
}

// UnregisterKeyProvider clears the process-wide key provider.
func UnregisterKeyProvider() {
	globalProviderMu.Lock()
	defer globalProviderMu.Unlock()
	globalProvider = nil
}

// GlobalKeyProvider returns the currently registered process-wide key
// provider, or nil if none is registered.
func GlobalKeyProvider() KeyProvider {
	globalProviderMu.Lock()
	defer globalProviderMu.Unlock()
	return globalProvider
}
