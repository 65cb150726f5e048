package services

import (
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
)

// TestPrice mencari harga tes berdasarkan nama persis. Tes yang tidak ada di
// katalog dihargai 0 tanpa error.
func TestPrice(catalog []cm.DiagnosticTest, name string) float64 {
	for _, t := range catalog {
		if t.Name == name {
			return t.Price
		}
	}
	return 0
}

// CalculateTotal menjumlahkan harga seluruh tes.
func CalculateTotal(catalog []cm.DiagnosticTest, tests []string) float64 {
	var total float64
	for _, name := range tests {
		total += TestPrice(catalog, name)
	}
	return total
}

// DiscountedTotal = subtotal - subtotal*discount/100, tanpa pembulatan.
func DiscountedTotal(subtotal, discount float64) float64 {
	return subtotal - (subtotal*discount)/100
}

func CalculateDiscountedTotal(catalog []cm.DiagnosticTest, tests []string, discount float64) float64 {
	return DiscountedTotal(CalculateTotal(catalog, tests), discount)
}
