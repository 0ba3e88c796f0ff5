package commands

import (
	"context"
	"encoding/hex"
	"strconv"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/app"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/x"
	"github.com/iov-one/cooloff/x/escrow"
	"github.com/spf13/cobra"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// InitCmd loads a genesis file into an empty ledger.
func InitCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Initialize the ledger from a genesis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			n, err := c.open()
			if err != nil {
				return err
			}
			defer n.close()
			return n.app.InitChain(gen)
		},
	}
}

// txResult is printed after a successful transaction.
type txResult struct {
	Data cmn.HexBytes      `json:"data,omitempty"`
	Tags map[string]string `json:"tags"`
}

// deliver executes the message signed by the --from signer and commits the
// result.
func (c *config) deliver(msg cooloff.Msg) error {
	signer, err := c.signer()
	if err != nil {
		return err
	}
	n, err := c.open()
	if err != nil {
		return err
	}
	defer n.close()
	info, err := c.blockInfo(n)
	if err != nil {
		return err
	}

	ctx := x.WithConditions(context.Background(), signer)
	res, err := n.app.Deliver(ctx, info, msg)
	if err != nil {
		return err
	}

	out := txResult{Data: res.Data, Tags: make(map[string]string, len(res.Tags))}
	for _, kv := range res.Tags {
		out.Tags[string(kv.Key)] = string(kv.Value)
	}
	return c.print(out)
}

// CreateCmd deposits funds of the signer into a new escrow.
func CreateCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "create <recipient> <amount>",
		Short: "Create an escrow for the recipient, funded by the signer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := cooloff.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Wrapf(errors.ErrAmount, "amount %q", args[1])
			}
			return c.deliver(&escrow.CreateMsg{Recipient: recipient, Amount: amount})
		},
	}
}

// ReleaseCmd pays an escrow to its recipient, the signer.
func ReleaseCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "release <escrow id>",
		Short: "Withdraw an escrow after its release time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.deliver(&escrow.ReleaseMsg{EscrowID: id})
		},
	}
}

// ReturnCmd pays an escrow back to its sender, the signer.
func ReturnCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "return <escrow id>",
		Short: "Take an escrow back before its release time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.deliver(&escrow.ReturnMsg{EscrowID: id})
		},
	}
}

func parseID(s string) ([]byte, error) {
	id, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "escrow id %q", s)
	}
	return id, nil
}
