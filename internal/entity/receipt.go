package entity

import (
	"time"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// FieldConfidence rates how strongly the source text supported one extracted field.
type FieldConfidence struct {
	Level  constants.ConfidenceLevel `json:"level"`
	Reason string                    `json:"reason"`
	Score  float64                   `json:"score"`
}

// ExpenseItem is a single line item harvested from the receipt body.
type ExpenseItem struct {
	Description string                    `json:"description"`
	Quantity    float64                   `json:"quantity"`
	UnitPrice   *float64                  `json:"unit_price,omitempty"`
	TotalPrice  float64                   `json:"total_price"`
	Confidence  constants.ConfidenceLevel `json:"confidence"`
}

// ReceiptRecord is the final structured output of one pipeline invocation.
// For multi-page input the merger rebuilds it with a fresh confidence map and
// item list, never aliasing any single page's.
type ReceiptRecord struct {
	MerchantName      string                     `json:"merchant_name,omitempty"`
	Total             *float64                   `json:"total,omitempty"`
	TxDate            *time.Time                 `json:"tx_date,omitempty"`
	Tax               *float64                   `json:"tax,omitempty"`
	Subtotal          *float64                   `json:"subtotal,omitempty"`
	CurrencyCode      string                     `json:"currency_code"`
	PaymentMethod     string                     `json:"payment_method,omitempty"`
	Items             []ExpenseItem              `json:"items,omitempty"`
	Confidence        map[string]FieldConfidence `json:"confidence"`
	OverallConfidence float64                    `json:"overall_confidence"`
	RawText           string                     `json:"raw_text"`
	ProcessingTime    time.Duration              `json:"processing_time_ns"`
	ImageQuality      constants.ImageQuality     `json:"image_quality,omitempty"`
	SuggestedCategory constants.Category         `json:"suggested_category"`
	Warnings          []string                   `json:"warnings,omitempty"`
}
