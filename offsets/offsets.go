// Package offsets tracks the view shifts a user applies to the epoch display:
// one global offset shared by every protocol and one independent offset per
// protocol.
//
// A Store is not safe for concurrent use. The UI owns it and only mutates it
// from its update loop.
package offsets

import (
	"fmt"
	"maps"

	"github.com/andareed/epochx/protocol"
)

// ErrUnknownProtocol is the registry sentinel.
var ErrUnknownProtocol = protocol.ErrUnknownProtocol

// State is a point-in-time copy of a Store.
type State struct {
	Global    int64
	Protocols map[string]int64
}

type Store struct {
	global    int64
	protocols map[string]int64
	known     map[string]struct{}
}

// New returns an empty store that accepts offsets for the given ids.
func New(ids ...string) *Store {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &Store{
		protocols: make(map[string]int64),
		known:     known,
	}
}

func (s *Store) Global() int64 { return s.global }

func (s *Store) SetGlobal(n int64) { s.global = n }

func (s *Store) IncrementGlobal() { s.global++ }
func (s *Store) DecrementGlobal() { s.global-- }

// ResetGlobal zeroes the global offset and clears every protocol offset.
func (s *Store) ResetGlobal() {
	s.global = 0
	clear(s.protocols)
}

// Protocol returns the offset for id, 0 when unset or unknown.
func (s *Store) Protocol(id string) int64 {
	return s.protocols[id]
}

func (s *Store) IncrementProtocol(id string) error {
	return s.add(id, 1)
}

func (s *Store) DecrementProtocol(id string) error {
	return s.add(id, -1)
}

func (s *Store) ResetProtocol(id string) error {
	if err := s.check(id); err != nil {
		return err
	}
	delete(s.protocols, id)
	return nil
}

func (s *Store) SetProtocol(id string, n int64) error {
	if err := s.check(id); err != nil {
		return err
	}
	if n == 0 {
		delete(s.protocols, id)
		return nil
	}
	s.protocols[id] = n
	return nil
}

// SetProtocolTarget sets the offset for id so that base + Global() + offset
// equals target. base is the protocol's unshifted epoch number.
func (s *Store) SetProtocolTarget(id string, target, base int64) error {
	return s.SetProtocol(id, target-base-s.global)
}

func (s *Store) Snapshot() State {
	return State{Global: s.global, Protocols: maps.Clone(s.protocols)}
}

// Restore puts the store back to st. Ids the store does not know are dropped.
func (s *Store) Restore(st State) {
	s.global = st.Global
	clear(s.protocols)
	for id, n := range st.Protocols {
		if _, ok := s.known[id]; ok && n != 0 {
			s.protocols[id] = n
		}
	}
}

func (s *Store) add(id string, d int64) error {
	return s.SetProtocol(id, s.protocols[id]+d)
}

func (s *Store) check(id string) error {
	if _, ok := s.known[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProtocol, id)
	}
	return nil
}
