package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/ledger"
)

// AuditPoolCmd compares what the pool emitted with what its emission
// schedule allows up to now.
func AuditPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit-pool",
		Short: "Audit the pool's emitted rewards against its emission schedule",
		Args:  cobra.ExactArgs(0),
		RunE:  auditPool,
	}

	return cmd
}

func auditPool(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dbClient, err := newAuditDbClient(cmd)
	if err != nil {
		return err
	}

	poolDoc, err := dbClient.GetPool(ctx)
	if err != nil {
		return err
	}
	pool, err := poolDoc.ToPool()
	if err != nil {
		return err
	}

	audit, err := ledger.AuditEmission(*pool, time.Now().Unix())
	if err != nil {
		return err
	}

	printEmissionAudit(cmd.OutOrStdout(), audit)
	return nil
}

// AuditBeneficiaryCmd walks through what a beneficiary could claim now.
func AuditBeneficiaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit-beneficiary [authority]",
		Short: "Show the step by step harvestable reward of a beneficiary",
		Args:  cobra.ExactArgs(1),
		RunE:  auditBeneficiary,
	}

	return cmd
}

func auditBeneficiary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dbClient, err := newAuditDbClient(cmd)
	if err != nil {
		return err
	}

	beneficiaryDoc, err := dbClient.GetBeneficiary(ctx, args[0])
	if err != nil {
		return err
	}
	poolDoc, err := dbClient.GetPool(ctx)
	if err != nil {
		return err
	}
	pool, err := poolDoc.ToPool()
	if err != nil {
		return err
	}

	audit, err := ledger.AuditBeneficiary(beneficiaryDoc.ToBeneficiary(), *pool, time.Now().Unix())
	if err != nil {
		return err
	}

	printBeneficiaryAudit(cmd.OutOrStdout(), audit)
	return nil
}

func newAuditDbClient(cmd *cobra.Command) (db.DbInterface, error) {
	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return nil, err
	}

	dbClient, err := db.New(cmd.Context(), cfg.Db)
	if err != nil {
		return nil, err
	}
	return dbClient, nil
}
