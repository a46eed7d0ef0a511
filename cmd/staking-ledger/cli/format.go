package cli

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/zoints/staking-ledger/internal/fixedpoint"
	"github.com/zoints/staking-ledger/internal/ledger"
)

// payoutDec renders a Payout with 18 of its 19 fractional digits.
func payoutDec(p fixedpoint.Payout) math.LegacyDec {
	raw := p.Raw().ToBig()
	raw.Quo(raw, big.NewInt(10))
	return math.LegacyNewDecFromBigIntWithPrec(raw, math.LegacyPrecision)
}

var legacyUnit = uint256.NewInt(1_000_000_000_000_000_000)

// rewardPerShareDec converts the scaled accumulator into reward per staked
// unit, truncated to 18 fractional digits. The whole part is divided out
// before conversion so any 256-bit accumulator stays within LegacyDec range.
func rewardPerShareDec(rewardPerShare *uint256.Int) math.LegacyDec {
	scale := fixedpoint.RewardScale()
	whole, frac := new(uint256.Int).DivMod(rewardPerShare, scale, new(uint256.Int))
	frac.Div(frac, new(uint256.Int).Div(scale, legacyUnit))

	return math.LegacyNewDecFromBigInt(whole.ToBig()).
		Add(math.LegacyNewDecFromBigIntWithPrec(frac.ToBig(), math.LegacyPrecision))
}

func formatTime(ts int64) string {
	return fmt.Sprintf("%d (%s)", ts, time.Unix(ts, 0).UTC().Format(time.RFC3339))
}

func printEmissionAudit(w io.Writer, a ledger.EmissionAudit) {
	maxPayout := payoutDec(a.MaxPayout)
	emitted := payoutDec(a.Emitted)

	fmt.Fprintf(w, "now:                %s\n", formatTime(a.Now))
	fmt.Fprintf(w, "start time:         %s\n", formatTime(a.StartTime))
	fmt.Fprintf(w, "current emission:   %d per period\n", a.CurrentEmission)
	fmt.Fprintf(w, "next emission drop: %s\n", formatTime(a.NextChangeTime))
	fmt.Fprintf(w, "reward per share:   %s\n", rewardPerShareDec(a.RewardPerShare))
	fmt.Fprintf(w, "max payout:         %s\n", maxPayout)
	fmt.Fprintf(w, "emitted:            %s\n", emitted)
	fmt.Fprintf(w, "unreleased:         %s\n", maxPayout.Sub(emitted))
	if a.Consistent() {
		fmt.Fprintln(w, "status:             OK")
	} else {
		fmt.Fprintln(w, "status:             EMITTED MORE THAN SCHEDULED")
	}
}

func printBeneficiaryAudit(w io.Writer, a ledger.BeneficiaryAudit) {
	fmt.Fprintf(w, "authority:          %s\n", a.Authority)
	fmt.Fprintf(w, "now:                %s\n", formatTime(a.Now))
	fmt.Fprintf(w, "staked:             %d\n", a.Staked)
	fmt.Fprintf(w, "reward per share:   %s\n", rewardPerShareDec(a.RewardPerShare))
	fmt.Fprintf(w, "holding value:      %d (staked x reward per share)\n", a.HoldingValue)
	fmt.Fprintf(w, "reward debt:        %d\n", a.RewardDebt)
	fmt.Fprintf(w, "pending:            %d (holding value - reward debt)\n", a.Pending)
	fmt.Fprintf(w, "holding:            %d\n", a.Holding)
	fmt.Fprintf(w, "harvestable:        %d (holding + pending)\n", a.Harvestable)
}
