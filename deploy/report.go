package deploy

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"

	"github.com/jinmel/zks-multisig/bindings"
	"github.com/jinmel/zks-multisig/zksync"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

// WriteResult renders what was signed and where it went.
func WriteResult(w io.Writer, res *Result) {
	table := newTable(w, "Field", "Value")
	tx := res.Tx
	to := "-"
	if tx.To != nil {
		to = tx.To.Hex()
	}
	table.AppendBulk([][]string{
		{"from", tx.From.Hex()},
		{"to", to},
		{"chain id", tx.ChainID.String()},
		{"nonce", fmt.Sprint(tx.Nonce)},
		{"value (ETH)", zksync.FormatEther(tx.Value)},
		{"gas limit", fmt.Sprint(tx.Gas)},
		{"max fee per gas", tx.FeeCap().String()},
		{"digest", res.Digest.Hex()},
	})
	if res.Sent {
		table.Append([]string{"tx hash", res.Hash.Hex()})
	} else {
		table.Append([]string{"raw", res.Raw.String()})
	}
	if r := res.Receipt; r != nil {
		status := "success"
		if r.Status == 0 {
			status = "reverted"
		}
		table.Append([]string{"status", status})
		if r.BlockNumber != nil {
			table.Append([]string{"block", (*big.Int)(r.BlockNumber).String()})
		}
	}
	table.Render()
}

func WriteLimit(w io.Writer, token common.Address, limit bindings.Limit) {
	table := newTable(w, "Token", "Limit (ETH)", "Available (ETH)", "Reset time", "Enabled")
	reset := "-"
	if limit.ResetTime != nil && limit.ResetTime.Sign() > 0 && limit.ResetTime.IsInt64() {
		reset = time.Unix(limit.ResetTime.Int64(), 0).UTC().Format(time.RFC3339)
	}
	table.Append([]string{
		token.Hex(),
		zksync.FormatEther(limit.Limit),
		zksync.FormatEther(limit.Available),
		reset,
		fmt.Sprint(limit.IsEnabled),
	})
	table.Render()
}

func WriteOwners(w io.Writer, statuses []OwnerStatus) {
	table := newTable(w, "Slot", "Configured", "On chain", "Match")
	for _, s := range statuses {
		table.Append([]string{fmt.Sprint(s.Slot), s.Configured.Hex(), s.OnChain.Hex(), fmt.Sprint(s.Matches())})
	}
	table.Render()
}
