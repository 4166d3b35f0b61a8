package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// BalanceTolerance is the maximum acceptable difference between debit and
// credit sums of a journal entry, in currency units.
var BalanceTolerance = decimal.RequireFromString("0.01")

// SignedAmount applies the correct sign to a line amount based on the
// account's normal balance side. A debit increases a debit-normal account
// and decreases a credit-normal one; credit is the mirror. This is used by
// both services and repositories so the balance math lives in one place.
func SignedAmount(entryType domain.EntryType, normal domain.NormalBalance, amount decimal.Decimal) decimal.Decimal {
	if (entryType == domain.Debit) == (normal == domain.DebitNormal) {
		return amount
	}
	return amount.Neg()
}

// ValidateLines checks the double-entry invariant for a set of journal lines:
// at least two lines, every amount strictly positive, and debit and credit
// sums equal within BalanceTolerance.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, line.AccountCode)
		}
		switch line.EntryType {
		case domain.Debit:
			debits = debits.Add(line.Amount)
		case domain.Credit:
			credits = credits.Add(line.Amount)
		default:
			return fmt.Errorf("%w: invalid entry type %q", apperrors.ErrValidation, line.EntryType)
		}
	}

	if debits.Sub(credits).Abs().GreaterThanOrEqual(BalanceTolerance) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// DebitTotal computes the economic value of an entry: the sum of its debit
// lines, which for a balanced entry equals the credit side.
func DebitTotal(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.EntryType == domain.Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// BalanceChanges aggregates the signed per-account deltas a set of lines
// will apply when posted. Every account code in lines must be present in
// accounts.
func BalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		acc, ok := accounts[line.AccountCode]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, line.AccountCode)
		}
		changes[line.AccountCode] = changes[line.AccountCode].Add(
			SignedAmount(line.EntryType, acc.NormalBalance, line.Amount))
	}
	return changes, nil
}

// ComputedBalance derives an account balance from its debit/credit totals
// according to its normal balance side.
func ComputedBalance(totalDebit, totalCredit decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.DebitNormal {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

// Round2 rounds a monetary amount to two decimal places. Applied only at the
// report boundary, never during intermediate accumulation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatJournalReference renders the global journal entry sequence,
// e.g. FormatJournalReference(1) == "JE-000001".
func FormatJournalReference(seq int64) string {
	return fmt.Sprintf("JE-%06d", seq)
}

// FormatEventReference renders the type-scoped reference used for classified
// business events, e.g. "SAL-2024-0001" for the first sales event of 2024.
func FormatEventReference(txType domain.TransactionType, date time.Time, seq int64) string {
	prefix := strings.ToUpper(string(txType))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, date.Year(), seq)
}

// EventSequenceScope is the counter key for a type-scoped reference. Scoping
// by type and year matches the reference format, so counters restart each
// year without ever repeating a reference.
func EventSequenceScope(txType domain.TransactionType, date time.Time) string {
	return fmt.Sprintf("%s:%d", txType, date.Year())
}

// JournalSequenceScope is the counter key for the global JE sequence.
const JournalSequenceScope = "journal_entry"
