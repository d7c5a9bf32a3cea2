package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-lend-keeper/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── ResolveStatus ─────────────────────────────────────────────────────────────

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		repaid    string
		requested models.RecordStatus
		stage     Stage
		want      models.RecordStatus
	}{
		{"creation always pending even when covered", "100", "100", models.StatusPaid, StageCreation, models.StatusPending},
		{"creation with nothing requested", "100", "0", "", StageCreation, models.StatusPending},
		{"edit under repaid forces pending", "100", "50", models.StatusPaid, StageEdit, models.StatusPending},
		{"edit under repaid by one cent", "100.00", "99.99", models.StatusPaid, StageEdit, models.StatusPending},
		{"edit covered honors paid", "100", "100", models.StatusPaid, StageEdit, models.StatusPaid},
		{"edit over repaid honors paid", "100", "150", models.StatusPaid, StageEdit, models.StatusPaid},
		{"edit covered honors explicit pending", "100", "100", models.StatusPending, StageEdit, models.StatusPending},
		{"edit covered without request derives paid", "100", "120", "", StageEdit, models.StatusPaid},
		{"edit exactly covered without request derives paid", "100.00", "100", "", StageEdit, models.StatusPaid},
		{"edit short without request stays pending", "100", "99.99", "", StageEdit, models.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(dec(tt.principal), dec(tt.repaid), tt.requested, tt.stage)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestResolveStatus_NeverPaidBelowPrincipal walks a grid of amounts and checks
// that no requested status yields paid while the repayment is short.
func TestResolveStatus_NeverPaidBelowPrincipal(t *testing.T) {
	for p := 1; p <= 20; p++ {
		for r := 0; r <= 25; r++ {
			for _, req := range []models.RecordStatus{models.StatusPaid, models.StatusPending, ""} {
				for _, stage := range []Stage{StageCreation, StageEdit} {
					got := ResolveStatus(decimal.NewFromInt(int64(p)), decimal.NewFromInt(int64(r)), req, stage)
					if r < p {
						assert.Equal(t, models.StatusPending, got, "p=%d r=%d req=%q", p, r, req)
					}
				}
			}
		}
	}
}

// TestResolveStatus_SameRowCreateThenEdit feeds one uploaded row through
// creation and then saves the same values as an edit.
func TestResolveStatus_SameRowCreateThenEdit(t *testing.T) {
	row, rowErr := NormalizeRow(RawRow{Line: 2, Cells: map[string]string{"Name": " Alice ", "Amount": "100", "Amount Paid Back": "100"}})
	if !assert.Nil(t, rowErr) {
		return
	}

	draft := row.Draft()
	assert.Equal(t, "Alice", draft.Name)
	assert.Equal(t, models.StatusPending, draft.Status)

	got := ResolveStatus(draft.Principal, draft.AmountRepaid, "", StageEdit)
	assert.Equal(t, models.StatusPaid, got)
}

// ── StatusOverridden ──────────────────────────────────────────────────────────

func TestStatusOverridden(t *testing.T) {
	assert.True(t, StatusOverridden(models.StatusPaid, models.StatusPending))
	assert.False(t, StatusOverridden(models.StatusPaid, models.StatusPaid))
	assert.False(t, StatusOverridden("", models.StatusPending))
}

// ── ParseStatus ───────────────────────────────────────────────────────────────

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.RecordStatus
		ok   bool
	}{
		{"paid", models.StatusPaid, true},
		{" Yes ", models.StatusPaid, true},
		{"NO", models.StatusPending, true},
		{"pending", models.StatusPending, true},
		{"maybe", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// ── ValidateRecord ────────────────────────────────────────────────────────────

func TestValidateRecord(t *testing.T) {
	valid := models.Record{Name: "Alice", Principal: dec("100"), AmountRepaid: dec("0"), Status: models.StatusPending}

	tests := []struct {
		name    string
		mutate  func(r *models.Record)
		wantErr error
	}{
		{"valid pending", func(r *models.Record) {}, nil},
		{"blank name", func(r *models.Record) { r.Name = "   " }, ErrEmptyName},
		{"zero principal", func(r *models.Record) { r.Principal = decimal.Zero }, ErrNonPositivePrincipal},
		{"negative principal", func(r *models.Record) { r.Principal = dec("-5") }, ErrNonPositivePrincipal},
		{"negative repayment", func(r *models.Record) { r.AmountRepaid = dec("-0.01") }, ErrNegativeRepayment},
		{"unknown status", func(r *models.Record) { r.Status = "lost" }, ErrInvalidStatus},
		{"paid not covered", func(r *models.Record) { r.Status = models.StatusPaid; r.AmountRepaid = dec("99") }, ErrPaidNotCovered},
		{"paid covered", func(r *models.Record) { r.Status = models.StatusPaid; r.AmountRepaid = dec("100") }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			err := ValidateRecord(rec)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
