// Package protocol holds the static set of protocols whose epochs are
// displayed, and loads it from configuration.
package protocol

import (
	"errors"
	"fmt"

	"github.com/andareed/epochx/epoch"
)

var (
	ErrUnknownProtocol = errors.New("unknown protocol")
	ErrInvalidConfig   = errors.New("invalid protocol config")
)

// Protocol is immutable once loaded.
type Protocol struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Color              string `json:"color"`
	Logo               string `json:"logo"`
	ReferenceTimestamp int64  `json:"referenceTimestamp"`
	ReferenceEpoch     int64  `json:"referenceEpoch"`
}

func (p Protocol) Reference() epoch.Reference {
	return epoch.Reference{Timestamp: p.ReferenceTimestamp, Epoch: p.ReferenceEpoch}
}

// Registry is an ordered, read-only set of protocols.
type Registry struct {
	protocols []Protocol
	byID      map[string]int
}

func NewRegistry(protocols []Protocol) (*Registry, error) {
	r := &Registry{
		protocols: make([]Protocol, len(protocols)),
		byID:      make(map[string]int, len(protocols)),
	}
	copy(r.protocols, protocols)
	for i, p := range r.protocols {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: protocol %d has an empty id", ErrInvalidConfig, i)
		}
		if j, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate protocol id %q (records %d and %d)", ErrInvalidConfig, p.ID, j, i)
		}
		if err := checkReference(p.Reference()); err != nil {
			return nil, fmt.Errorf("%w: protocol %q: %v", ErrInvalidConfig, p.ID, err)
		}
		r.byID[p.ID] = i
	}
	return r, nil
}

func (r *Registry) Len() int { return len(r.protocols) }

// All returns the protocols in configuration order.
func (r *Registry) All() []Protocol {
	out := make([]Protocol, len(r.protocols))
	copy(out, r.protocols)
	return out
}

func (r *Registry) IDs() []string {
	ids := make([]string, len(r.protocols))
	for i, p := range r.protocols {
		ids[i] = p.ID
	}
	return ids
}

func (r *Registry) Lookup(id string) (Protocol, error) {
	i, ok := r.byID[id]
	if !ok {
		return Protocol{}, fmt.Errorf("%w: %q", ErrUnknownProtocol, id)
	}
	return r.protocols[i], nil
}

func checkReference(ref epoch.Reference) error {
	if !epoch.InRange(ref.Timestamp) {
		return fmt.Errorf("reference timestamp %d outside [%d, %d]", ref.Timestamp, epoch.MinTimestamp, epoch.MaxTimestamp)
	}
	if ref.Epoch > epoch.MaxEpoch || ref.Epoch < -epoch.MaxEpoch {
		return fmt.Errorf("reference epoch %d out of range", ref.Epoch)
	}
	return nil
}
