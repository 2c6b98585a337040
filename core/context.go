package core

// Context is the immutable, explicitly-passed replacement for the source
// system's process-wide globals (__private.types, genesis_block). It is
// built once at startup by NewContext and handed to every operation; no
// package-level mutable chain configuration exists.
type Context struct {
	Registry *TypeRegistry
	Slots    *SlotCalendar

	TotalSupply       uint64
	DelegatesPerRound uint64
	GenesisBlockID    string

	// senderPublicKeyExceptions grandfathers historical transaction ids from
	// the sender-public-key-matches-account check (spec §4.6 check 3).
	senderPublicKeyExceptions map[string]struct{}
}

// NewContext constructs an immutable Context. exceptions may be nil.
func NewContext(registry *TypeRegistry, slots *SlotCalendar, totalSupply, delegatesPerRound uint64, genesisBlockID string, exceptions []string) *Context {
	set := make(map[string]struct{}, len(exceptions))
	for _, id := range exceptions {
		set[id] = struct{}{}
	}
	return &Context{
		Registry:                  registry,
		Slots:                     slots,
		TotalSupply:               totalSupply,
		DelegatesPerRound:         delegatesPerRound,
		GenesisBlockID:            genesisBlockID,
		senderPublicKeyExceptions: set,
	}
}

// IsSenderPublicKeyException reports whether txID is grandfathered from the
// sender-public-key check.
func (c *Context) IsSenderPublicKeyException(txID string) bool {
	if c == nil || txID == "" {
		return false
	}
	_, ok := c.senderPublicKeyExceptions[txID]
	return ok
}

// IsGenesis reports whether block is the chain's genesis block.
func (c *Context) IsGenesis(blockID string) bool {
	return c.GenesisBlockID != "" && blockID == c.GenesisBlockID
}
