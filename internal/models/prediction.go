package models

// Strategy names used by the suggestion service
const (
	StrategyConservative = "Conservative"
	StrategyBalanced     = "Balanced"
	StrategyHighRisk     = "High-Risk"
)

// PredictRequest is the body of POST /predict
type PredictRequest struct {
	Seed   *uint64 `json:"seed"`
	Count  int     `json:"count"`
	Window int     `json:"window"`
}

// ScoredCombination is one candidate with its frequency-based metrics
type ScoredCombination struct {
	Strategy  string  `json:"name"`
	Numbers   []int   `json:"numbers"`
	Reward    float64 `json:"reward"`
	Risk      float64 `json:"risk"`
	Score     float64 `json:"score"`
	RR        float64 `json:"rr"`
	Win       float64 `json:"win"`
	Rationale string  `json:"rationale"`
}

// RangeSummary reports per-range counts over the analysed window
type RangeSummary struct {
	Buckets map[string]map[string]int `json:"buckets"`
	Top     []string                  `json:"top2"`
	Bottom  string                    `json:"bottom"`
}

// PredictResponse bundles every strategy's candidates
type PredictResponse struct {
	Last          FeaturedDraw                   `json:"last"`
	Window        int                            `json:"window"`
	BestStrategy  string                         `json:"best_key"`
	BestTop5      []ScoredCombination            `json:"best_top5"`
	Best3         []ScoredCombination            `json:"best3"`
	AllByStrategy map[string][]ScoredCombination `json:"all"`
	Ranges        RangeSummary                   `json:"ranges"`
}

// CombinationRequest is the body of POST /combinations
type CombinationRequest struct {
	Mode   string  `json:"mode"`
	Count  int     `json:"count"`
	Seed   *uint64 `json:"seed"`
	End    int     `json:"end"`
	Window int     `json:"window"`
}

// CombinationResponse lists generated combinations with digests
type CombinationResponse struct {
	Mode         string                 `json:"mode"`
	Window       int                    `json:"window"`
	End          int                    `json:"end"`
	Combinations []GeneratedCombination `json:"combinations"`
}

// GeneratedCombination is a generated combination with its summary
type GeneratedCombination struct {
	Numbers   [6]int `json:"numbers"`
	Sum       int    `json:"sum"`
	OddCount  int    `json:"oddCount"`
	HighCount int    `json:"highCount"`
}
