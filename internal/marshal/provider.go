package marshal

import "savedhi/internal/model"

// KeyProvider derives a user key for (algo, userName) on demand — the
// injected closure capability of spec §4.5/§9, supplied by the CLI
// collaborator that owns prompting for the user's secret.
type KeyProvider func(algo model.AlgorithmVersion, userName string) (*model.UserKey, error)

// ProxyProvider caches the last-derived user key so a marshal operation
// over many sites at the same algorithm pays the cost of scrypt once
// (spec §4.8 "Key provider proxy", §9). Its lifetime is a single marshal
// operation; callers must call Close when done so the cached key is
// zeroed.
type ProxyProvider struct {
	underlying KeyProvider
	userName   string
	cached     *model.UserKey
}

// NewProxyProvider wraps underlying for userName.
func NewProxyProvider(underlying KeyProvider, userName string) *ProxyProvider {
	return &ProxyProvider{underlying: underlying, userName: userName}
}

// Get returns the cached key if its algorithm matches algo, else derives a
// fresh one via the underlying provider, zeroing and replacing any
// previously cached key.
func (p *ProxyProvider) Get(algo model.AlgorithmVersion) (*model.UserKey, error) {
	if p.underlying == nil {
		return nil, model.NewError(model.KindMissingInput, "no key provider configured")
	}
	if p.cached != nil && p.cached.Algorithm == algo {
		return p.cached, nil
	}
	p.invalidate()
	key, err := p.underlying(algo, p.userName)
	if err != nil {
		return nil, err
	}
	p.cached = key
	return p.cached, nil
}

// Invalidate zeroes and drops the cached key.
func (p *ProxyProvider) Invalidate() {
	p.invalidate()
}

func (p *ProxyProvider) invalidate() {
	if p.cached != nil {
		p.cached.Zero()
		p.cached = nil
	}
}

// Close releases the cached key. Safe to call multiple times.
func (p *ProxyProvider) Close() {
	p.invalidate()
}
