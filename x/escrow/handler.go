package escrow

import (
	"context"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r cooloff.Registry, l *Ledger) {
	r.Handle(pathCreate, CreateHandler{l})
	r.Handle(pathRelease, ReleaseHandler{l})
	r.Handle(pathReturn, ReturnHandler{l})
}

// CreateHandler creates an escrow. The id of the new escrow is returned as
// the result data.
type CreateHandler struct {
	ledger *Ledger
}

var _ cooloff.Handler = CreateHandler{}

func (h CreateHandler) Deliver(ctx context.Context, info cooloff.BlockInfo, m cooloff.Msg) (*cooloff.DeliverResult, error) {
	msg, ok := m.(*CreateMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	id, events, err := h.ledger.create(ctx, info, msg.Recipient, msg.Amount)
	if err != nil {
		return nil, err
	}
	return &cooloff.DeliverResult{Data: id, Tags: tags(events)}, nil
}

// ReleaseHandler pays an escrow to its recipient.
type ReleaseHandler struct {
	ledger *Ledger
}

var _ cooloff.Handler = ReleaseHandler{}

func (h ReleaseHandler) Deliver(ctx context.Context, info cooloff.BlockInfo, m cooloff.Msg) (*cooloff.DeliverResult, error) {
	msg, ok := m.(*ReleaseMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	events, err := h.ledger.release(ctx, info, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	return &cooloff.DeliverResult{Tags: tags(events)}, nil
}

// ReturnHandler pays an escrow back to its sender.
type ReturnHandler struct {
	ledger *Ledger
}

var _ cooloff.Handler = ReturnHandler{}

func (h ReturnHandler) Deliver(ctx context.Context, info cooloff.BlockInfo, m cooloff.Msg) (*cooloff.DeliverResult, error) {
	msg, ok := m.(*ReturnMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	events, err := h.ledger.doReturn(ctx, info, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	return &cooloff.DeliverResult{Tags: tags(events)}, nil
}

func tags(events []Event) []cmn.KVPair {
	var res []cmn.KVPair
	for i := range events {
		res = append(res, events[i].Tags()...)
	}
	return res
}
