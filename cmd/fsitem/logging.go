package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// SlogManager is a [slog.Handler] that fans records out to a set of named
// handlers, which can be added and removed at runtime. Attributes and groups
// added through [SlogManager.WithAttrs] and [SlogManager.WithGroup] are also
// applied to handlers added later on.
type SlogManager struct {
	sync.RWMutex
	handlers map[string]slog.Handler
	attrs    []slog.Attr
	groups   []string
}

// NewSlogManager returns a pointer to a new, empty [SlogManager].
func NewSlogManager() *SlogManager {
	return &SlogManager{
		handlers: make(map[string]slog.Handler),
	}
}

// Enabled reports whether any of the handlers handles the level.
func (m *SlogManager) Enabled(ctx context.Context, level slog.Level) bool {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every handler that is enabled for its level.
func (m *SlogManager) Handle(ctx context.Context, r slog.Record) error {
	m.RLock()
	defer m.RUnlock()

	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WithAttrs returns a new [SlogManager] whose handlers all carry attrs.
func (m *SlogManager) WithAttrs(attrs []slog.Attr) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	derived := m.derive()
	derived.attrs = append(derived.attrs, attrs...)

	for name, h := range m.handlers {
		derived.handlers[name] = h.WithAttrs(attrs)
	}

	return derived
}

// WithGroup returns a new [SlogManager] whose handlers all open group name.
func (m *SlogManager) WithGroup(name string) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	derived := m.derive()
	derived.groups = append(derived.groups, name)

	for handlerName, h := range m.handlers {
		derived.handlers[handlerName] = h.WithGroup(name)
	}

	return derived
}

// derive copies the attributes and groups into a new [SlogManager] without
// any handlers. The caller must hold the read lock.
func (m *SlogManager) derive() *SlogManager {
	attrs := make([]slog.Attr, len(m.attrs))
	copy(attrs, m.attrs)

	groups := make([]string, len(m.groups))
	copy(groups, m.groups)

	return &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    attrs,
		groups:   groups,
	}
}

// AddHandler adds (or replaces) a named handler, applying all attributes and
// groups the [SlogManager] was derived with.
func (m *SlogManager) AddHandler(name string, handler slog.Handler) {
	m.Lock()
	defer m.Unlock()

	h := handler
	if len(m.attrs) > 0 {
		h = h.WithAttrs(m.attrs)
	}

	for _, group := range m.groups {
		h = h.WithGroup(group)
	}

	m.handlers[name] = h
}

// RemoveHandler removes a named handler.
func (m *SlogManager) RemoveHandler(name string) {
	m.Lock()
	defer m.Unlock()

	delete(m.handlers, name)
}

// Handlers returns the number of handlers.
func (m *SlogManager) Handlers() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.handlers)
}
