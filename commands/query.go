package commands

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/x/cash"
	"github.com/iov-one/cooloff/x/escrow"
	"github.com/spf13/cobra"
	cmn "github.com/tendermint/tendermint/libs/common"
)

type escrowView struct {
	ID          cmn.HexBytes     `json:"id"`
	Sender      cooloff.Address  `json:"sender"`
	Recipient   cooloff.Address  `json:"recipient"`
	Custody     cooloff.Address  `json:"custody"`
	Amount      uint64           `json:"amount"`
	CreatedAt   cooloff.UnixTime `json:"created_at"`
	ReleaseTime cooloff.UnixTime `json:"release_time"`
	IsReleased  bool             `json:"is_released"`
	IsReturned  bool             `json:"is_returned"`
	IsActive    bool             `json:"is_active"`
}

func viewEscrow(e *escrow.Escrow) escrowView {
	return escrowView{
		ID:          e.ID,
		Sender:      e.Sender,
		Recipient:   e.Recipient,
		Custody:     e.Address(),
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		ReleaseTime: e.ReleaseTime,
		IsReleased:  e.IsReleased,
		IsReturned:  e.IsReturned,
		IsActive:    e.IsActive,
	}
}

// query opens the ledger and runs fn on it.
func (c *config) query(fn func(*node) (interface{}, error)) error {
	n, err := c.open()
	if err != nil {
		return err
	}
	defer n.close()
	res, err := fn(n)
	if err != nil {
		return err
	}
	return c.print(res)
}

// ShowCmd prints a single escrow.
func ShowCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <escrow id>",
		Short: "Show an escrow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.query(func(n *node) (interface{}, error) {
				esc, err := n.ledger.Escrow(id)
				if err != nil {
					return nil, err
				}
				return viewEscrow(esc), nil
			})
		},
	}
}

// ListCmd prints the ids of all escrows of an address.
func ListCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "list <address>",
		Short: "List escrows the address sends or receives, in creation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := cooloff.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return c.query(func(n *node) (interface{}, error) {
				ids, err := n.ledger.UserEscrows(addr)
				if err != nil {
					return nil, err
				}
				res := make([]cmn.HexBytes, len(ids))
				for i, id := range ids {
					res[i] = id
				}
				return res, nil
			})
		},
	}
}

type statusView struct {
	escrow.Status
	CanRelease bool `json:"can_release"`
	CanReturn  bool `json:"can_return"`
}

// StatusCmd prints the status of an escrow at the block time.
func StatusCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "status <escrow id>",
		Short: "Show the status of an escrow at the given time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.query(func(n *node) (interface{}, error) {
				info, err := c.blockInfo(n)
				if err != nil {
					return nil, err
				}
				s, err := n.ledger.Status(info, id)
				if err != nil {
					return nil, err
				}
				canRelease, err := n.ledger.CanRelease(info, id)
				if err != nil {
					return nil, err
				}
				canReturn, err := n.ledger.CanReturn(info, id)
				if err != nil {
					return nil, err
				}
				return statusView{Status: *s, CanRelease: canRelease, CanReturn: canReturn}, nil
			})
		},
	}
}

type eventView struct {
	Seq         uint64           `json:"seq"`
	Kind        string           `json:"kind"`
	EscrowID    cmn.HexBytes     `json:"escrow_id"`
	Sender      cooloff.Address  `json:"sender,omitempty"`
	Recipient   cooloff.Address  `json:"recipient,omitempty"`
	Amount      uint64           `json:"amount"`
	ReleaseTime cooloff.UnixTime `json:"release_time,omitempty"`
	Height      int64            `json:"height"`
	Time        cooloff.UnixTime `json:"time"`
}

// EventsCmd prints the event log.
func EventsCmd(c *config) *cobra.Command {
	var (
		after uint64
		limit int
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show committed events in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.query(func(n *node) (interface{}, error) {
				events, err := n.ledger.Events(after, limit)
				if err != nil {
					return nil, err
				}
				res := make([]eventView, len(events))
				for i, ev := range events {
					res[i] = eventView{
						Seq:         ev.Seq,
						Kind:        ev.Kind,
						EscrowID:    ev.EscrowID,
						Sender:      ev.Sender,
						Recipient:   ev.Recipient,
						Amount:      ev.Amount,
						ReleaseTime: ev.ReleaseTime,
						Height:      ev.Height,
						Time:        ev.Time,
					}
				}
				return res, nil
			})
		},
	}
	cmd.Flags().Uint64Var(&after, "after", 0, "only show events with a greater sequence")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of events, all if not set")
	return cmd
}

// BalanceCmd prints the balance of an address.
func BalanceCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the balance of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := cooloff.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return c.query(func(n *node) (interface{}, error) {
				balance, err := n.bank.Balance(n.store, addr)
				if err != nil {
					return nil, err
				}
				return cash.Wallet{Balance: balance}, nil
			})
		},
	}
}

type addressView struct {
	Condition string          `json:"condition"`
	Address   cooloff.Address `json:"address"`
	Bech32    string          `json:"bech32"`
}

// AddressCmd prints the address of a signer name.
func AddressCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "address <name>",
		Short: "Show the address of a signer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cond := SignerCondition(args[0])
			addr := cond.Address()
			b32, err := addr.Bech32()
			if err != nil {
				return err
			}
			return c.print(addressView{Condition: cond.String(), Address: addr, Bech32: b32})
		},
	}
}
