package theme

import (
	"strings"
	"sync"
)

// Sink receives propagated theme values.
type Sink interface {
	SetVariable(name, value string)
	SetMarker(marker string)
}

// StyleSheet is the process-wide style namespace. It is safe for concurrent
// use and renders itself as CSS custom properties.
type StyleSheet struct {
	mu     sync.RWMutex
	vars   map[string]string
	order  []string
	marker string
}

var _ Sink = (*StyleSheet)(nil)

// NewStyleSheet returns an empty style sheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{vars: make(map[string]string)}
}

func (s *StyleSheet) SetVariable(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vars[name]; !ok {
		s.order = append(s.order, name)
	}
	s.vars[name] = value
}

func (s *StyleSheet) SetMarker(marker string) {
	s.mu.Lock()
	s.marker = marker
	s.mu.Unlock()
}

// Snapshot returns a copy of every variable currently set.
func (s *StyleSheet) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// Marker returns the current root identity marker.
func (s *StyleSheet) Marker() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.marker
}

// CSS renders the namespace in first-set order.
func (s *StyleSheet) CSS() string {
	s.mu.RLock()
	vars := make([]Variable, len(s.order))
	for i, name := range s.order {
		vars[i] = Variable{Name: name, Value: s.vars[name]}
	}
	marker := s.marker
	s.mu.RUnlock()
	return RenderCSS(marker, vars)
}

// RenderCSS formats vars as a :root block of custom properties. The marker
// is emitted as a leading comment and as a class-scoped copy of the block so
// pages can match on the marker class.
func RenderCSS(marker string, vars []Variable) string {
	var b strings.Builder
	if marker != "" {
		b.WriteString("/* " + marker + " */\n")
	}
	writeBlock(&b, ":root", vars)
	if marker != "" {
		b.WriteString("\n")
		writeBlock(&b, "."+marker, vars)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, vars []Variable) {
	b.WriteString(selector + " {\n")
	for _, v := range vars {
		b.WriteString("  --" + v.Name + ": " + v.Value + ";\n")
	}
	b.WriteString("}\n")
}
