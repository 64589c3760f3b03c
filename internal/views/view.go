package views

import (
	"context"

	"github.com/rs/zerolog"
)

// view carries what every page needs to issue backend calls.
type view struct {
	Lifecycle

	ctx     context.Context
	backend Backend
	log     zerolog.Logger
	owner   uint64
}

func newView(ctx context.Context, backend Backend, log zerolog.Logger, name string) view {
	return view{
		ctx:     ctx,
		backend: backend,
		log:     log.With().Str("component", "view").Str("view", name).Logger(),
		owner:   nextOwner(),
	}
}

// mine reports whether a message was issued by this view instance.
func (v *view) mine(owner uint64) bool {
	return owner == v.owner
}

// stale settles a response issued for a portfolio that is no longer selected.
func (v *view) stale(op Op, issuedFor, selected string) {
	v.log.Debug().
		Str("op", string(op)).
		Str("issued_for", issuedFor).
		Str("selected", selected).
		Msg("Discarding response for previous selection")
	v.discard()
}
