package domain

import "time"

// Enumerations
const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleCashier UserRole = "cashier"

	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"

	MovementIn     MovementKind = "in"
	MovementOut    MovementKind = "out"
	MovementAdjust MovementKind = "adjust"

	SupplierActive          SupplierStatus = "Active"
	SupplierInactive        SupplierStatus = "Inactive"
	SupplierSuspended       SupplierStatus = "Suspended"
	SupplierUnderEvaluation SupplierStatus = "UnderEvaluation"

	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

type UserRole string
type Severity string
type MovementKind string
type SupplierStatus string
type SaleStatus string

// ValidSeverity normalizes unknown severities to info.
func ValidSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return Severity(s)
	}
	return SeverityInfo
}

type Setting struct {
	Key         string
	Value       string
	Description string
	Category    string
	UpdatedAt   time.Time
}

type User struct {
	ID            int64
	Name          string
	Username      string
	PasswordHash  string
	Role          UserRole
	Email         string
	Phone         string
	Active        bool
	LoginAttempts int
	Locked        bool
	LastLogin     *time.Time
	CreatedAt     time.Time
}

type Client struct {
	ID           int64
	FirstName    string
	LastName     string
	NationalID   *string
	Phone        string
	Email        string
	Address      string
	RegisteredAt time.Time
	Active       bool
	Tier         string
	CreditLimit  float64
	Notes        string
}

type Supplier struct {
	ID           int64
	Name         string
	ContactName  string
	ContactTitle string
	Phone        string
	Email        string
	Website      string
	Category     string
	Status       SupplierStatus
	Address      string
	TaxID        string
	BusinessType string
	PaymentTerms string
	CreditLimit  float64
	Notes        string
	Rating       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Cost        float64
	Stock       int
	MinStock    int
	CategoryID  *int64
	SupplierID  *int64
	SKU         *string
	Barcode     string
	Unit        string
	TaxRate     float64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Discount struct {
	ID         int64
	Name       string
	Kind       string
	Percentage float64
	MinAmount  float64
	ValidFrom  *time.Time
	ValidUntil *time.Time
	Active     bool
	MaxUses    int
	UsedCount  int
}

// Sale headers are immutable once created; cancellation only flips status.
type Sale struct {
	ID            string
	Date          time.Time
	Total         float64
	Subtotal      float64
	Tax           float64
	DiscountTotal float64
	AmountPaid    float64
	Change        float64
	UserID        *int64
	ClientID      *int64
	ReceiptKind   string
	Status        SaleStatus
	PaymentMethod string
	Notes         string
	Items         []SaleItem
}

type SaleItem struct {
	ID          int64
	SaleID      string
	ProductID   *int64
	ProductName string
	Quantity    int
	UnitPrice   float64
	Discount    float64
	Tax         float64
	Subtotal    float64
}

// InventoryMovement is the audit record of a single stock change.
type InventoryMovement struct {
	ID          int64
	ProductID   int64
	Kind        MovementKind
	Quantity    int
	StockBefore int
	StockAfter  int
	Reason      string
	Reference   string
	UserID      *int64
	MovedAt     time.Time
	Notes       string
}

type Notification struct {
	ID        int64
	Title     string
	Message   string
	Severity  Severity
	Icon      string
	Read      bool
	ActionRef string
	UserID    *int64
	CreatedAt time.Time
	ReadAt    *time.Time
}

type AuditEntry struct {
	ID          int64
	UserID      *int64
	Action      string
	Module      string
	Description string
	IPAddress   string
	UserAgent   string
	LoggedAt    time.Time
}

type Backup struct {
	ID        int64
	Filename  string
	Path      string
	Size      int64
	UserID    *int64
	Notes     string
	Automatic bool
	CreatedAt time.Time
}

type Company struct {
	ID             int64
	Name           string
	TaxID          string
	Address        string
	Phone          string
	Email          string
	Website        string
	Currency       string
	Language       string
	Timezone       string
	DefaultTaxRate float64
}

type InvoiceSeries struct {
	ID             int64
	Series         string
	Description    string
	CurrentNumber  int
	Resolution     string
	ResolutionDate *time.Time
	NumberFrom     int
	NumberTo       int
	Active         bool
}
