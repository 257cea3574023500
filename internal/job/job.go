// Package job defines the print job value consumed by the delivery
// pipeline. A job is constructed fresh per print action by the upstream
// order layer, consumed exactly once and never persisted.
package job

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeWorkOrder  Type = "work-order"
	TypeReceipt    Type = "receipt"
	TypeInvoice    Type = "invoice"
	TypeSettlement Type = "settlement"
	TypeGeneric    Type = "generic"
)

type CutType string

const (
	CutFull    CutType = "full"
	CutPartial CutType = "partial"
	CutNone    CutType = "none"
)

var ErrInvalidJob = errors.New("invalid print job")

// Settings selects the device profiles for one job. Every id must resolve
// in its registry at encode time.
type Settings struct {
	Destination string  `json:"destination"`
	PaperSize   string  `json:"paper_size"`
	CutType     CutType `json:"cut_type"`
	FontType    string  `json:"font_type"`
	Density     string  `json:"density"`
	Copies      int     `json:"copies"`
}

// LineItem is one order line. The unit price is always derived from the
// subtotal, never stored.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	Length      string          `json:"length,omitempty"`
	Width       string          `json:"width,omitempty"`
	Finishing   string          `json:"finishing,omitempty"`
	Description string          `json:"description,omitempty"`
}

// UnitPrice derives the per-piece price from the stored subtotal. A zero
// quantity yields zero instead of a division error.
func (i LineItem) UnitPrice() decimal.Decimal {
	if i.Quantity <= 0 {
		return decimal.Zero
	}
	return i.SubTotal.DivRound(decimal.NewFromInt(int64(i.Quantity)), 0)
}

// Dimension renders the "L x W" string for items sold by area. Either side
// missing, empty or the literal "null" collapses the whole string to "-".
func (i LineItem) Dimension() string {
	if i.Length == "" || i.Width == "" || i.Length == "null" || i.Width == "null" {
		return "-"
	}
	return fmt.Sprintf("%s x %s", i.Length, i.Width)
}

// FinishingLabel returns the finishing name, defaulting to loose sheets.
func (i LineItem) FinishingLabel() string {
	if i.Finishing == "" {
		return "Lembaran"
	}
	return i.Finishing
}

// Flag is a named boolean on the order; only set flags are rendered.
type Flag struct {
	Label string `json:"label"`
	Set   bool   `json:"set"`
}

type OrderData struct {
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	Total           decimal.Decimal `json:"total"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	PaymentNow      decimal.Decimal `json:"payment_now"`
	Flags           []Flag          `json:"flags,omitempty"`
	Staff           []string        `json:"staff,omitempty"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	DeadlineHasTime bool            `json:"deadline_has_time,omitempty"`
}

// PrintJob is the single input of the delivery pipeline.
//
// SelectedItemIDs distinguishes three cases for work orders: nil means
// print every item, a non-empty set restricts the item list, and an empty
// non-nil set prints the "no items selected" placeholder.
type PrintJob struct {
	ID              string     `json:"id"`
	Type            Type       `json:"type"`
	Content         string     `json:"content,omitempty"`
	Settings        Settings   `json:"settings"`
	Order           OrderData  `json:"order"`
	Items           []LineItem `json:"items"`
	SelectedItemIDs []string   `json:"selected_item_ids,omitempty"`
}

// SelectedItems applies the work-order selection. The second return value
// reports whether the selection was present but empty.
func (j *PrintJob) SelectedItems() ([]LineItem, bool) {
	if j.SelectedItemIDs == nil {
		return j.Items, false
	}
	if len(j.SelectedItemIDs) == 0 {
		return nil, true
	}
	selected := make(map[string]bool, len(j.SelectedItemIDs))
	for _, id := range j.SelectedItemIDs {
		selected[id] = true
	}
	out := make([]LineItem, 0, len(j.Items))
	for _, item := range j.Items {
		if selected[item.ID] {
			out = append(out, item)
		}
	}
	return out, false
}

// Validate rejects jobs the pipeline could never deliver.
func (j *PrintJob) Validate() error {
	switch j.Type {
	case TypeWorkOrder, TypeReceipt, TypeInvoice, TypeSettlement, TypeGeneric:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidJob, j.Type)
	}
	if j.Settings.Copies < 1 {
		return fmt.Errorf("%w: copies must be at least 1", ErrInvalidJob)
	}
	switch j.Settings.CutType {
	case CutFull, CutPartial, CutNone:
	default:
		return fmt.Errorf("%w: unknown cut type %q", ErrInvalidJob, j.Settings.CutType)
	}
	return nil
}
