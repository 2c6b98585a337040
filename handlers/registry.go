package handlers

import "github.com/synnergy-chain/txcore/core"

// NewDefaultRegistry builds a core.TypeRegistry wired with the reference
// handlers in this package: transfer (0), second-signature registration
// (1), and multisignature registration (4). Embedding applications are free
// to build their own registry and register a different handler set; this
// one exists for the CLI and for tests.
func NewDefaultRegistry() (*core.TypeRegistry, error) {
	r := core.NewTypeRegistry()
	if err := r.Register(0, TransferHandler{}); err != nil {
		return nil, err
	}
	if err := r.Register(1, SecondSignatureHandler{}); err != nil {
		return nil, err
	}
	if err := r.Register(4, MultisignatureHandler{}); err != nil {
		return nil, err
	}
	return r, nil
}
