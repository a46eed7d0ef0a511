package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoints/staking-ledger/internal/ledger"
)

// InitPoolCmd publishes the one-time pool initialization, e.g.
// ./staking-ledger init-pool ZEE pool-authority --fee-recipient treasury --config config.yml
func InitPoolCmd() *cobra.Command {
	var (
		feeRecipient      string
		startTime         int64
		unbondingDuration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "init-pool [asset] [authority]",
		Short: "Initialize the staking pool for an asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := publishCommand(cmd.Context(), ledger.InitializePool{
				Asset:             args[0],
				Authority:         args[1],
				FeeRecipient:      feeRecipient,
				StartTime:         startTime,
				UnbondingDuration: uint64(unbondingDuration / time.Second),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published pool initialization %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&feeRecipient, "fee-recipient", "", "beneficiary receiving the fee share")
	cmd.Flags().Int64Var(&startTime, "start-time", 0, "unix time rewards start accruing (default: when processed)")
	cmd.Flags().DurationVar(&unbondingDuration, "unbonding-duration", 0, "unbonding duration (default from staking config)")

	return cmd
}
