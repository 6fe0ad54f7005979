package domain

// Breakdown holds the five sustainability axes.
// Values are offsets from the total and are not bounded to 0-100.
type Breakdown struct {
	Materials     int `json:"materials"`
	Manufacturing int `json:"manufacturing"`
	SupplyChain   int `json:"supplyChain"`
	Longevity     int `json:"longevity"`
	Circularity   int `json:"circularity"`
}

// StepStatus is the state of a scanner progress step
type StepStatus string

const (
	StepComplete StepStatus = "complete"
	StepScanning StepStatus = "scanning"
	StepError    StepStatus = "error"
)

// ScanStep is one progress-log entry shown while a product is analysed
type ScanStep struct {
	Message string     `json:"message"`
	Status  StepStatus `json:"status"`
}

// SustainabilityScore is the result of scoring a product
type SustainabilityScore struct {
	Total     int        `json:"total"` // 0-100
	Breakdown Breakdown  `json:"breakdown"`
	Analysis  []string   `json:"analysis"`
	Steps     []ScanStep `json:"steps"`
}

// SearchIntent is a best-guess reading of a free-text search
type SearchIntent struct {
	Brand    string   `json:"brand,omitempty"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"keywords"`
}
