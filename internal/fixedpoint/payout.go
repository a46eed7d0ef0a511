package fixedpoint

import (
	"fmt"

	"github.com/holiman/uint256"
)

// PayoutScale is the number of sub-units in one whole unit of a Payout.
const PayoutScale uint64 = 10_000_000_000_000_000_000

var payoutScale = uint256.NewInt(PayoutScale)

// Payout is an amount carried with 19 decimal digits of sub-unit precision.
// Fractional dust stays in the value until it adds up to a whole unit.
type Payout struct {
	amount uint256.Int
}

func NewPayout(amount uint64) Payout {
	var p Payout
	p.amount.Mul(uint256.NewInt(amount), payoutScale)
	return p
}

// PayoutFromRaw rebuilds a Payout from its scaled representation.
func PayoutFromRaw(raw *uint256.Int) Payout {
	var p Payout
	p.amount.Set(raw)
	return p
}

// Raw returns the scaled representation.
func (p Payout) Raw() *uint256.Int {
	return new(uint256.Int).Set(&p.amount)
}

// Whole returns the number of complete units.
func (p Payout) Whole() (uint64, error) {
	return ToUint64(new(uint256.Int).Div(&p.amount, payoutScale))
}

// Remainder returns the sub-unit part, always below PayoutScale.
func (p Payout) Remainder() uint64 {
	return new(uint256.Int).Mod(&p.amount, payoutScale).Uint64()
}

// ClearWhole drops the whole units and keeps the dust.
func (p *Payout) ClearWhole() {
	p.amount.Mod(&p.amount, payoutScale)
}

func (p *Payout) Add(other Payout) error {
	sum, err := Add(&p.amount, &other.amount)
	if err != nil {
		return err
	}
	p.amount.Set(sum)
	return nil
}

func (p *Payout) MulUint64(factor uint64) error {
	product, err := Mul(&p.amount, uint256.NewInt(factor))
	if err != nil {
		return err
	}
	p.amount.Set(product)
	return nil
}

func (p *Payout) DivUint64(divisor uint64) error {
	quo, err := Div(&p.amount, uint256.NewInt(divisor))
	if err != nil {
		return err
	}
	p.amount.Set(quo)
	return nil
}

func (p Payout) IsZero() bool {
	return p.amount.IsZero()
}

// String renders the payout as whole.remainder with the remainder zero-padded.
func (p Payout) String() string {
	whole := new(uint256.Int).Div(&p.amount, payoutScale)
	return fmt.Sprintf("%s.%019d", whole.Dec(), p.Remainder())
}
