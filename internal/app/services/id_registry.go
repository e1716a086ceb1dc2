package services

// IDRegistry resolves stable identifiers against a prior export and mints
// new ones when neither key is known. Minted ids are deliberately not
// recorded back: a duplicate input code then mints twice and surfaces as a
// validation finding instead of silently sharing an id.
type IDRegistry struct {
	codeIDs     map[string]int64
	registryIDs map[string]int64
	next        int64
	minted      int64
}

// NewIDRegistry seeds the mint counter past every known identifier
func NewIDRegistry(codeIDs, registryIDs map[string]int64) *IDRegistry {
	var max int64
	for _, id := range codeIDs {
		if id > max {
			max = id
		}
	}
	for _, id := range registryIDs {
		if id > max {
			max = id
		}
	}

	return &IDRegistry{
		codeIDs:     codeIDs,
		registryIDs: registryIDs,
		next:        max + 1,
	}
}

// Resolve returns the identifier for a territory. The registry code wins
// over the business code, a known business code wins over minting.
func (r *IDRegistry) Resolve(code, registryCode string) int64 {
	if registryCode != "" {
		if id, ok := r.registryIDs[registryCode]; ok {
			return id
		}
	}
	if id, ok := r.codeIDs[code]; ok {
		return id
	}

	id := r.next
	r.next++
	r.minted++
	return id
}

// Minted returns how many new identifiers were assigned
func (r *IDRegistry) Minted() int64 {
	return r.minted
}
