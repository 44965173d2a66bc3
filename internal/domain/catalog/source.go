package catalog

import "context"

// Source loads the full directory for a cart session.
// Implementations fetch from the external commerce API; the cart builder
// never writes through this interface.
type Source interface {
	Load(ctx context.Context, kind CounterpartyKind) (*Directory, error)
}
