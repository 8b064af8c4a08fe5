package models

// ItemGroup is one row of the vendor-facing summary: all lines sharing the
// exact (itemName, customization) pair, quantities summed. Group order is
// first appearance in the snapshot, which is what the numbered shopping
// list prints.
type ItemGroup struct {
	ItemName      string `json:"itemName"`
	Customization string `json:"customization"`
	TotalQuantity int    `json:"totalQuantity"`
	LineCount     int    `json:"lineCount"`
}

// PersonOrders is one person's lines in insertion order.
type PersonOrders struct {
	Person string      `json:"person"`
	Lines  []OrderLine `json:"lines"`
}

// Progress reports how much of the day's total has been collected.
// Collected is true exactly when every line is paid and there is at least
// one line.
type Progress struct {
	PaidAmount  int64   `json:"paidAmount"`
	TotalAmount int64   `json:"totalAmount"`
	Ratio       float64 `json:"ratio"`
	Collected   bool    `json:"collected"`
}

// UnpaidGroup is one person's outstanding lines and the amount they owe.
type UnpaidGroup struct {
	Person    string      `json:"person"`
	Lines     []OrderLine `json:"lines"`
	TotalOwed int64       `json:"totalOwed"`
}

// Receipt records a bulk paid/unpaid toggle for one person's snapshot of
// lines.
type Receipt struct {
	ReceiptID string `json:"receiptId"`
	Person    string `json:"person"`
	Amount    int64  `json:"amount"`
	LineCount int    `json:"lineCount"`
	Paid      bool   `json:"paid"`
}
