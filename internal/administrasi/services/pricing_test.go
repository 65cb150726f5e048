package services

import (
	"testing"

	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/stretchr/testify/assert"
)

var sampleCatalog = []cm.DiagnosticTest{
	{Name: "CBC", Price: 100},
	{Name: "X-Ray", Price: 300},
	{Name: "Lipid Profile", Price: 450.5},
}

func TestTestPrice(t *testing.T) {
	assert.Equal(t, 100.0, TestPrice(sampleCatalog, "CBC"))
	assert.Equal(t, 0.0, TestPrice(sampleCatalog, "cbc"), "lookup is case-sensitive")
	assert.Equal(t, 0.0, TestPrice(sampleCatalog, "MRI"))
	assert.Equal(t, 0.0, TestPrice(nil, "CBC"))
}

func TestCalculateTotals(t *testing.T) {
	tests := []string{"CBC", "X-Ray"}

	assert.Equal(t, 400.0, CalculateTotal(sampleCatalog, tests))
	assert.Equal(t, 360.0, CalculateDiscountedTotal(sampleCatalog, tests, 10))
	assert.Equal(t, 400.0, CalculateTotal(sampleCatalog, []string{"X-Ray", "MRI", "CBC"}))
	assert.Equal(t, 0.0, CalculateTotal(sampleCatalog, nil))
}

func TestDiscountedTotalProperty(t *testing.T) {
	for _, s := range []float64{0, 1, 99.99, 400, 450.5, 123456.78} {
		for d := 0.0; d <= 100; d += 2.5 {
			got := DiscountedTotal(s, d)
			assert.Equal(t, s-s*d/100, got)
			assert.LessOrEqual(t, got, s)
			assert.GreaterOrEqual(t, got, -1e-9)
		}
	}
}

func TestDiscountedTotalNoRounding(t *testing.T) {
	assert.Equal(t, 450.5-450.5*33.0/100, DiscountedTotal(450.5, 33))
}
