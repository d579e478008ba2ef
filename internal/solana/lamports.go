package solana

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is 10^9.
const LamportsPerSOL = 1_000_000_000

const solDecimals = 9

// Placeholder is printed for missing or unparsable amounts.
const Placeholder = "—"

// LamportsToSOL converts a lamport amount (as the API sends it, a decimal
// string) to SOL without floating-point loss.
func LamportsToSOL(lamports string) (decimal.Decimal, error) {
	lamports = strings.TrimSpace(lamports)
	if lamports == "" {
		return decimal.Zero, fmt.Errorf("empty lamport amount")
	}
	d, err := decimal.NewFromString(lamports)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid lamport amount %q: %w", lamports, err)
	}
	return d.Shift(-solDecimals), nil
}

// FormatSOL renders a lamport string as "1.5 SOL", trimming trailing zeros.
// Missing or unparsable amounts render as Placeholder.
func FormatSOL(lamports string) string {
	sol, err := LamportsToSOL(lamports)
	if err != nil {
		return Placeholder
	}
	return sol.String() + " SOL"
}

// FormatSOLPtr is FormatSOL for optional response fields.
func FormatSOLPtr(lamports *string) string {
	if lamports == nil {
		return Placeholder
	}
	return FormatSOL(*lamports)
}

// SOLToLamports converts a SOL amount ("1.25") to lamports, rejecting
// fractions of a lamport.
func SOLToLamports(sol string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(sol))
	if err != nil {
		return 0, fmt.Errorf("invalid SOL amount %q: %w", sol, err)
	}
	l := d.Shift(solDecimals)
	if !l.Equal(l.Truncate(0)) {
		return 0, fmt.Errorf("invalid SOL amount %q: more than %d decimals", sol, solDecimals)
	}
	return l.IntPart(), nil
}
