package core

import "fmt"

// IdentifierPool hands out small integer ids and recycles released ones.
type IdentifierPool struct {
	owners []interface{}
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	return &IdentifierPool{owners: make([]interface{}, 0, capacity)}
}

// Acquire returns the lowest free id and records owner against it.
func (p *IdentifierPool) Acquire(owner interface{}) uint32 {
	length := uint32(len(p.owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if p.owners[i] == nil {
			p.owners[i] = owner
			return i
		}
	}

	// No existing free slots, push one.
	p.owners = append(p.owners, owner)
	return uint32(len(p.owners)) - 1
}

func (p *IdentifierPool) Release(id uint32) error {
	if id >= uint32(len(p.owners)) {
		return fmt.Errorf("release id %d (max=%d): %w", id, len(p.owners), ErrInvalidIdentifier)
	}
	// Just zero out the entry, making it available for use.
	p.owners[id] = nil
	return nil
}

// Owner returns what was registered with id, or nil.
func (p *IdentifierPool) Owner(id uint32) interface{} {
	if id >= uint32(len(p.owners)) {
		return nil
	}
	return p.owners[id]
}

// Live returns the number of ids currently in use.
func (p *IdentifierPool) Live() int {
	n := 0
	for _, o := range p.owners {
		if o != nil {
			n++
		}
	}
	return n
}
