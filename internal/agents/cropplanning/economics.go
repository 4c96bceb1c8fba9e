package cropplanning

import (
	"fmt"

	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

// calculateEconomics scales per-hectare input costs and yield by farm size
// and derives revenue/profit/ROI at market min, max, and MSP.
func calculateEconomics(crop knowledge.Crop, farmSizeHa float64) domain.Economics {
	if farmSizeHa <= 0 {
		farmSizeHa = 1.0
	}

	inputCost := crop.InputCosts.Total() * farmSizeHa
	yieldKg := crop.ExpectedYieldKgHa * farmSizeHa
	yieldQuintal := yieldKg / 100

	revenueMin := yieldQuintal * crop.MarketPriceRange.Min
	revenueMax := yieldQuintal * crop.MarketPriceRange.Max
	profitMin := revenueMin - inputCost
	profitMax := revenueMax - inputCost

	econ := domain.Economics{
		InputCostTotal: inputCost,
		RevenueMin:     revenueMin,
		RevenueMax:     revenueMax,
		ProfitMin:      profitMin,
		ProfitMax:      profitMax,
	}

	if crop.MSP2024 != nil {
		revenueMSP := yieldQuintal * *crop.MSP2024
		profitMSP := revenueMSP - inputCost
		econ.RevenueMSP = &revenueMSP
		econ.ProfitMSP = &profitMSP
	}

	if inputCost > 0 {
		econ.ROIPercent = round1(profitMax / inputCost * 100)
	}
	return econ
}

// estimateYield scales the base per-hectare yield by a soil-health
// multiplier and reports the quality band and a signed soil-health-impact
// string. The result is a kg/ha rate, independent of farm size; only
// calculateEconomics scales by farm size for the total-revenue figures.
func estimateYield(crop knowledge.Crop, soilHealth float64) domain.ExpectedYield {
	base := crop.ExpectedYieldKgHa
	if base == 0 {
		if v, ok := knowledge.BaseYieldKgHa[crop.Name]; ok {
			base = v
		}
	}

	var multiplier float64
	var quality string
	switch {
	case soilHealth >= 8:
		multiplier, quality = 1.15, "optimal"
	case soilHealth >= 6:
		multiplier, quality = 1.0, "good"
	case soilHealth >= 4:
		multiplier, quality = 0.85, "moderate"
	default:
		multiplier, quality = 0.7, "challenging"
	}

	yieldKg := base * multiplier
	rangeLow := yieldKg * 0.85
	rangeHigh := yieldKg * 1.1

	impactPercent := (multiplier - 1.0) * 100
	sign := "+"
	if impactPercent < 0 {
		sign = ""
	}
	impact := fmt.Sprintf("%s%.0f%%", sign, impactPercent)

	return domain.ExpectedYield{
		KgPerHa:          yieldKg,
		Range:            [2]float64{rangeLow, rangeHigh},
		QualityFactor:    quality,
		SoilHealthImpact: impact,
	}
}

func cropDuration(cropName string, crop knowledge.Crop) int {
	if d, ok := knowledge.DurationMonths[cropName]; ok {
		return d
	}
	if crop.DurationMonths > 0 {
		return crop.DurationMonths
	}
	return 4
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
