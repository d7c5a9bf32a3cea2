// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// Statistics are the running totals shown above the record list.
// "Paid" and "remaining" are measured in principal, not in repayments.
type Statistics struct {
	TotalPrincipal     decimal.Decimal
	PaidPrincipal      decimal.Decimal
	RemainingPrincipal decimal.Decimal
	PaidCount          int
	PendingCount       int
	TotalCount         int
}

// ComputeStatistics folds the whole collection in one pass.
func ComputeStatistics(records []models.Record) Statistics {
	stats := Statistics{
		TotalPrincipal: decimal.Zero,
		PaidPrincipal:  decimal.Zero,
	}

	for _, rec := range records {
		stats.TotalPrincipal = stats.TotalPrincipal.Add(rec.Principal)
		if rec.Status == models.StatusPaid {
			stats.PaidPrincipal = stats.PaidPrincipal.Add(rec.Principal)
			stats.PaidCount++
		} else {
			stats.PendingCount++
		}
	}

	stats.TotalCount = len(records)
	stats.RemainingPrincipal = stats.TotalPrincipal.Sub(stats.PaidPrincipal)
	return stats
}

// FormatAmount renders a money value with exactly two fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney prefixes FormatAmount with a currency symbol.
func FormatMoney(symbol string, d decimal.Decimal) string {
	return symbol + FormatAmount(d)
}
