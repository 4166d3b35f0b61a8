package domain

// TransactionType names the high-level business event a journal entry was
// derived from. The transaction classifier maps each type to a deterministic
// set of journal lines.
type TransactionType string

const (
	SalesCash        TransactionType = "sales_cash"
	SalesCredit      TransactionType = "sales_credit"
	PurchaseCash     TransactionType = "purchase_cash"
	PurchaseCredit   TransactionType = "purchase_credit"
	InventoryUsage   TransactionType = "inventory_usage"
	OperatingExpense TransactionType = "operating_expense"
	SalaryPayment    TransactionType = "salary_payment"
	OwnerCapital     TransactionType = "owner_capital"
	OwnerWithdrawal  TransactionType = "owner_withdrawal"
	Depreciation     TransactionType = "depreciation"
	ARCollection     TransactionType = "ar_collection"
	APPayment        TransactionType = "ap_payment"
	ManualJournal    TransactionType = "manual_journal"
)

// ExpenseCategory selects the expense account for an operating_expense event.
type ExpenseCategory string

const (
	ExpenseRawMaterial  ExpenseCategory = "raw_material"
	ExpenseSalary       ExpenseCategory = "salary"
	ExpenseUtilities    ExpenseCategory = "utilities"
	ExpenseRent         ExpenseCategory = "rent"
	ExpenseDepreciation ExpenseCategory = "depreciation"
	ExpenseOther        ExpenseCategory = "other"
)

// PaymentMethod selects the counter account for purchases and expenses.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCredit PaymentMethod = "credit"
)

// CashFlowBucket partitions cash movements in the cash flow statement.
type CashFlowBucket string

const (
	BucketOperating CashFlowBucket = "operating"
	BucketInvesting CashFlowBucket = "investing"
	BucketFinancing CashFlowBucket = "financing"
)

// CashFlowBucketFor maps an originating transaction type to its cash flow
// bucket. Anything unrecognised is treated as operating activity.
func CashFlowBucketFor(t TransactionType) CashFlowBucket {
	switch t {
	case Depreciation:
		return BucketInvesting
	case OwnerCapital, OwnerWithdrawal:
		return BucketFinancing
	default:
		return BucketOperating
	}
}
