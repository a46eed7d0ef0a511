package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoints/staking-ledger/internal/ledger"
)

func RegisterEndpointCmd() *cobra.Command {
	var primary, secondary string

	cmd := &cobra.Command{
		Use:   "register-endpoint [id] [owner]",
		Short: "Register an endpoint stakes can be made through",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := publishCommand(cmd.Context(), ledger.RegisterEndpoint{
				ID:        args[0],
				Owner:     args[1],
				Primary:   primary,
				Secondary: secondary,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published endpoint registration %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&primary, "primary", "", "primary beneficiary (default: the owner)")
	cmd.Flags().StringVar(&secondary, "secondary", "", "optional secondary beneficiary")

	return cmd
}
