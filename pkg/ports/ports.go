// SPDX-License-Identifier: MPL-2.0

// Package ports provides lazy port sources: values that stand in for a port
// number in a launch schema and are only resolved when the schema is
// realized into a command line.
package ports

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"strings"
	"sync"

	"github.com/jlaunch/jlaunch/pkg/types"
)

const (
	// DefaultHost is the address probed by AvailablePortIterator when no host is given.
	DefaultHost = "127.0.0.1"
)

var (
	// ErrNoAvailablePort is returned when a source has no port left to hand out.
	ErrNoAvailablePort = errors.New("no available port")
	// ErrInvalidPortRange is the sentinel error wrapped by InvalidPortRangeError.
	ErrInvalidPortRange = errors.New("invalid port range")
)

type (
	// Source yields a port on demand. Each call to Next may return a
	// different port; callers that need a stable value must resolve once and
	// keep the result.
	Source interface {
		Next() (types.ListenPort, error)
	}

	// Fixed is a Source that always yields the same port.
	Fixed types.ListenPort

	// AvailablePortIterator walks an inclusive port range and yields ports
	// that can currently be bound on Host. Ports are handed out at most once.
	// It is safe for concurrent use.
	AvailablePortIterator struct {
		host  string
		end   types.ListenPort
		mu    sync.Mutex
		next  types.ListenPort
		probe func(host string, port types.ListenPort) bool
	}

	// InvalidPortRangeError is returned when a port range is malformed or
	// has its bounds reversed.
	InvalidPortRangeError struct {
		Start types.ListenPort
		End   types.ListenPort
	}
)

// Next returns the fixed port.
func (f Fixed) Next() (types.ListenPort, error) {
	p := types.ListenPort(f)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}

// String returns the port in decimal.
func (f Fixed) String() string { return types.ListenPort(f).String() }

// IsNil reports whether src is nil or an interface holding a nil pointer,
// map, slice, func or channel. Calling Next on such a source panics.
func IsNil(src Source) bool {
	if src == nil {
		return true
	}
	switch v := reflect.ValueOf(src); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// NewAvailablePortIterator creates an iterator over [start, end] probing
// DefaultHost.
func NewAvailablePortIterator(start, end types.ListenPort) (*AvailablePortIterator, error) {
	return NewAvailablePortIteratorOnHost(DefaultHost, start, end)
}

// NewAvailablePortIteratorOnHost creates an iterator over [start, end]
// probing the given host. Port 0 is not allowed as a bound since it does not
// name a concrete port.
func NewAvailablePortIteratorOnHost(host string, start, end types.ListenPort) (*AvailablePortIterator, error) {
	if start <= 0 || end <= 0 || start > end {
		return nil, &InvalidPortRangeError{Start: start, End: end}
	}
	for _, p := range []types.ListenPort{start, end} {
		if err := p.Validate(); err != nil {
			return nil, &InvalidPortRangeError{Start: start, End: end}
		}
	}
	if host == "" {
		host = DefaultHost
	}
	return &AvailablePortIterator{
		host:  host,
		next:  start,
		end:   end,
		probe: canBind,
	}, nil
}

// ParseRange parses "start-end" (or a single port "start") into bounds.
func ParseRange(s string) (start, end types.ListenPort, err error) {
	lo, hi, found := strings.Cut(s, "-")
	if start, err = types.ParseListenPort(lo); err != nil {
		return 0, 0, fmt.Errorf("parsing port range %q: %w", s, err)
	}
	end = start
	if found {
		if end, err = types.ParseListenPort(hi); err != nil {
			return 0, 0, fmt.Errorf("parsing port range %q: %w", s, err)
		}
	}
	if start <= 0 || start > end {
		return 0, 0, &InvalidPortRangeError{Start: start, End: end}
	}
	return start, end, nil
}

// Next returns the next bindable port in the range.
func (it *AvailablePortIterator) Next() (types.ListenPort, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	for it.next <= it.end {
		p := it.next
		it.next++
		if it.probe(it.host, p) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w on %s in range ending %d", ErrNoAvailablePort, it.host, it.end)
}

// Host returns the address the iterator probes.
func (it *AvailablePortIterator) Host() string { return it.host }

// Remaining reports how many ports have not been tried yet.
func (it *AvailablePortIterator) Remaining() int {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.next > it.end {
		return 0
	}
	return int(it.end-it.next) + 1
}

// Error implements the error interface for InvalidPortRangeError.
func (e *InvalidPortRangeError) Error() string {
	return fmt.Sprintf("invalid port range %d-%d: bounds must be 1-65535 with start <= end", e.Start, e.End)
}

// Unwrap returns ErrInvalidPortRange for errors.Is() compatibility.
func (e *InvalidPortRangeError) Unwrap() error { return ErrInvalidPortRange }

func canBind(host string, port types.ListenPort) bool {
	l, err := net.Listen("tcp", net.JoinHostPort(host, port.String()))
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
