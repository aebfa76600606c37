package upstream

import "github.com/shopspring/decimal"

// Profile is the customer profile as the order service returns it.
// RouteDays holds weekday codes ("MON".."SUN") on which the vehicle visits.
type Profile struct {
	CustomerID   int64    `json:"customer_id"`
	Name         string   `json:"name"`
	BranchName   string   `json:"branch_name"`
	RouteDays    []string `json:"route_days"`
	ContactPhone string   `json:"contact_phone"`
}

type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ConsumptionSummaryItem struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	DailyAverage float64 `json:"daily_average"`
	Total        float64 `json:"total"`
	ObservedDays int     `json:"observed_days"`
}

// DraftSuggestion is one server-suggested order line. Price stays nil until
// the backend starts sending it.
type DraftSuggestion struct {
	ProductID      int64            `json:"product_id"`
	ProductName    string           `json:"product_name"`
	SuggestedQty   int              `json:"suggested_qty"`
	EffectiveStock int              `json:"effective_stock_used"`
	Price          *decimal.Decimal `json:"price,omitempty"`
}

const (
	WorkingCopyActive            = "active"
	WorkingCopyDeletedByDelivery = "deleted_by_delivery"

	ItemSourceDraft     = "draft"
	ItemSourceManualAdd = "manual_add"
)

type WorkingCopy struct {
	ID     int64             `json:"id"`
	Status string            `json:"status"`
	Items  []WorkingCopyItem `json:"items"`
}

// WorkingCopyItem UserQty is nil while the customer has not decided yet,
// which is distinct from zero.
type WorkingCopyItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UserQty     *int   `json:"user_qty"`
	Removed     bool   `json:"removed"`
	Source      string `json:"source"`
}

// ItemPatch is one element of the full-list PATCH body used by the
// working copy editor.
type ItemPatch struct {
	ProductID int64 `json:"product_id"`
	UserQty   *int  `json:"user_qty"`
	Removed   bool  `json:"removed"`
}

// QuantityPatch is the alternate PATCH element shape used when a cart
// replaces a fresh working copy's items wholesale.
type QuantityPatch struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Delivery struct {
	ID           int64          `json:"id"`
	CustomerID   int64          `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Status       string         `json:"status"`
	DeliveryDate string         `json:"delivery_date"`
	Items        []DeliveryItem `json:"items"`
}

type DeliveryItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
}

type StockDeclarationItem struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type StockDeclarationResult struct {
	DeclarationID  int64 `json:"declaration_id"`
	SpikesDetected int   `json:"spikes_detected"`
}

const (
	VarianceIncrease = "increase"
	VarianceDecrease = "decrease"
)

type VarianceEvent struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	ChangeRatio float64 `json:"change_ratio"`
	Direction   string  `json:"direction"`
	Severity    string  `json:"severity"`
	Status      string  `json:"status"`
	DetectedAt  string  `json:"detected_at"`
}

type DailyConsumption struct {
	Date        string  `json:"date"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         float64 `json:"qty"`
}

type Customer struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	BranchName string   `json:"branch_name"`
	RouteDays  []string `json:"route_days"`
}

type Order struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type WarehouseDraft struct {
	Lines []WarehouseDraftLine `json:"lines"`
}

type WarehouseDraftLine struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalQty    int    `json:"total_qty"`
}

type WarehouseOrder struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type HealthSummary struct {
	ActiveCustomers   int `json:"active_customers"`
	PendingDeliveries int `json:"pending_deliveries"`
	OpenVariance      int `json:"open_variance"`
	OrdersToday       int `json:"orders_today"`
}
