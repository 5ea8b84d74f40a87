package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProductGenerateSKU(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    *string
	}{
		{
			name:    "GLS",
			product: Product{Supplier: SupplierGLS, SupplierArticleNo: strPtr("12345")},
			want:    strPtr("LG12345"),
		},
		{
			name:    "ManufacturerPrefix",
			product: Product{Supplier: SupplierNonGLS, SupplierArticleNo: strPtr("900"), Manufacturer: strPtr("dentsply")},
			want:    strPtr("DE900"),
		},
		{
			name:    "ShortManufacturer",
			product: Product{Supplier: SupplierNonGLS, SupplierArticleNo: strPtr("900"), Manufacturer: strPtr("x")},
			want:    strPtr("X900"),
		},
		{
			name:    "NoManufacturer",
			product: Product{Supplier: SupplierNonGLS, SupplierArticleNo: strPtr("900")},
			want:    strPtr("900"),
		},
		{
			name:    "NoArticleNo",
			product: Product{Supplier: SupplierGLS},
			want:    nil,
		},
		{
			name:    "EmptyArticleNo",
			product: Product{Supplier: SupplierGLS, SupplierArticleNo: strPtr("")},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.GenerateSKU())
		})
	}
}

func TestTaskStatusShouldRun(t *testing.T) {
	now := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status *TaskStatus
		want   bool
	}{
		{name: "NeverRan", status: nil, want: true},
		{name: "SucceededToday", status: &TaskStatus{Status: true, LastRun: now.Add(-9 * time.Hour)}, want: false},
		{name: "SucceededYesterday", status: &TaskStatus{Status: true, LastRun: now.Add(-11 * time.Hour)}, want: true},
		{name: "FailedRecently", status: &TaskStatus{Status: false, LastRun: now.Add(-time.Hour)}, want: false},
		{name: "FailedLongAgo", status: &TaskStatus{Status: false, LastRun: now.Add(-TaskRetryAfterFailure)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.ShouldRun(now))
		})
	}
}
