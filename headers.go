package websession

import (
	"net/http"
	"net/textproto"
	"sync"
)

// headerSet is an ordered, case-insensitive multimap of default
// headers applied to every request a session client sends. Names are
// canonicalized once on the way in; insertion order is preserved so
// headers are applied deterministically.
type headerSet struct {
	mu      sync.RWMutex
	entries []headerEntry
}

type headerEntry struct {
	name   string
	values []string
}

// add appends values under name, extending the existing entry when the
// name is already present.
func (h *headerSet) add(name string, values ...string) {
	name = textproto.CanonicalMIMEHeaderKey(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if h.entries[i].name == name {
			h.entries[i].values = append(h.entries[i].values, values...)
			return
		}
	}
	h.entries = append(h.entries, headerEntry{name: name, values: values})
}

// set replaces any existing values under name.
func (h *headerSet) set(name, value string) {
	name = textproto.CanonicalMIMEHeaderKey(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if h.entries[i].name == name {
			h.entries[i].values = []string{value}
			return
		}
	}
	h.entries = append(h.entries, headerEntry{name: name, values: []string{value}})
}

// remove drops the entry for name, if any.
func (h *headerSet) remove(name string) {
	name = textproto.CanonicalMIMEHeaderKey(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if h.entries[i].name == name {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

// apply copies session defaults into hdr, skipping names the caller
// already set so per-request headers always win.
func (h *headerSet) apply(hdr http.Header) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, e := range h.entries {
		if len(hdr.Values(e.name)) > 0 {
			continue
		}
		for _, v := range e.values {
			hdr.Add(e.name, v)
		}
	}
}
