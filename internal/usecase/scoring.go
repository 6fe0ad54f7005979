package usecase

import (
	"strings"

	"github.com/sustainabuy/backend/internal/domain"
)

// Scoring constants
const (
	baselineScore            = 65
	sustainableMaterialBonus = 10
	maxScore                 = 100
)

// Breakdown offsets from the clamped total
const (
	materialsOffset     = 2
	manufacturingOffset = -5
	supplyChainOffset   = -10
	longevityOffset     = 5
	circularityOffset   = -8
)

const (
	baselineInsight            = "Standard sustainability profile."
	sustainableMaterialInsight = "Detected premium sustainable materials."
)

type brandHeuristic struct {
	total    int
	analysis []string
}

// brandHeuristics is keyed by lower-case brand, matched exactly
var brandHeuristics = map[string]brandHeuristic{
	"adidas":    {total: 72, analysis: []string{"Leading in recycled polyester usage.", "Transparent supply chain."}},
	"nike":      {total: 68, analysis: []string{"Improving circularity with Grind program.", "Vast supply chain challenges."}},
	"allbirds":  {total: 88, analysis: []string{"Natural materials (wool, sugar).", "B-Corp certified."}},
	"patagonia": {total: 94, analysis: []string{"Gold standard in repairability.", "Strict environmental sourcing."}},
}

// sustainableMaterials are matched as substrings of lower-cased material names
var sustainableMaterials = []string{"organic cotton", "recycled", "hemp", "tencel", "bamboo"}

var (
	stepInitialize = domain.ScanStep{Message: "Initializing neural scanner...", Status: domain.StepComplete}
	stepCrossRef   = domain.ScanStep{Message: "Cross-referencing Global Impact Database...", Status: domain.StepComplete}
	stepLifeCycle  = domain.ScanStep{Message: "Running Material Life Cycle Assessment...", Status: domain.StepComplete}
	stepFinalize   = domain.ScanStep{Message: "Finalizing Verification Layer...", Status: domain.StepComplete}
)

// CalculateSustainabilityScore rates a product from its brand and materials.
//
// A known brand's heuristic is taken as-is. Unknown brands start at the baseline and earn
// a bonus when any material looks sustainable. The total is capped at 100 but has no floor,
// and the breakdown axes are plain offsets of the total that may leave 0-100.
func CalculateSustainabilityScore(product domain.ProductData) *domain.SustainabilityScore {
	heuristic, known := brandHeuristics[strings.ToLower(product.Brand)]

	steps := []domain.ScanStep{stepInitialize, stepCrossRef, stepLifeCycle}

	total := baselineScore
	analysis := []string{baselineInsight}
	if known {
		total = heuristic.total
		analysis = append([]string(nil), heuristic.analysis...)
	}

	if !known && hasSustainableMaterial(product.Materials) {
		total += sustainableMaterialBonus
		analysis = append(analysis, sustainableMaterialInsight)
	}

	steps = append(steps, stepFinalize)

	if total > maxScore {
		total = maxScore
	}

	return &domain.SustainabilityScore{
		Total:     total,
		Breakdown: breakdownFromTotal(total),
		Analysis:  analysis,
		Steps:     steps,
	}
}

func breakdownFromTotal(total int) domain.Breakdown {
	return domain.Breakdown{
		Materials:     total + materialsOffset,
		Manufacturing: total + manufacturingOffset,
		SupplyChain:   total + supplyChainOffset,
		Longevity:     total + longevityOffset,
		Circularity:   total + circularityOffset,
	}
}

func hasSustainableMaterial(materials []string) bool {
	for _, m := range materials {
		lower := strings.ToLower(m)
		for _, sm := range sustainableMaterials {
			if strings.Contains(lower, sm) {
				return true
			}
		}
	}
	return false
}
