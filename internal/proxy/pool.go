package proxy

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// failureCooldown is how long a failed proxy is skipped
const failureCooldown = 5 * time.Minute

// ProxyPool rotates outbound search requests across a list of proxies
type ProxyPool struct {
	proxies []string
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewProxyPool creates a new ProxyPool
func NewProxyPool(proxies []string) *ProxyPool {
	return &ProxyPool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}
}

// ParseList splits a comma separated proxy flag value, dropping blanks
func ParseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of configured proxies
func (p *ProxyPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// GetNext returns the next healthy proxy from the pool
func (p *ProxyPool) GetNext() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	start := p.index
	for {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy]; ok {
			if time.Since(failTime) < failureCooldown {
				if p.index == start {
					// every proxy is cooling down; use this one anyway
					return proxy
				}
				continue
			}
			delete(p.failed, proxy)
		}

		return proxy
	}
}

// Next returns the next healthy proxy as a parsed URL
func (p *ProxyPool) Next() (string, *url.URL, error) {
	raw := p.GetNext()
	if raw == "" {
		return "", nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw, nil, err
	}
	return raw, u, nil
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *ProxyPool) MarkFailed(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = time.Now()
}

// MarkHealthy clears the failure status of a proxy
func (p *ProxyPool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}
