package domain

import "time"

const (
	CompatibilityPoor      = "Poor"
	CompatibilityOkay      = "Okay"
	CompatibilityGood      = "Good"
	CompatibilityExcellent = "Excellent"
	CompatibilityPerfect   = "Perfect"
)

type ScoreBreakdown struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// MatchScore contiene los cinco sub-puntajes y el total ponderado (0-100, enteros).
type MatchScore struct {
	Overall            int              `json:"overall"`
	FetishOverlap      int              `json:"fetishOverlap"`      // 40%
	PersonalityCompat  int              `json:"personalityCompat"`  // 15%
	LifestyleAlignment int              `json:"lifestyleAlignment"` // 20%
	ValuesAlignment    int              `json:"valuesAlignment"`    // 15%
	AestheticHarmony   int              `json:"aestheticHarmony"`   // 10%
	Breakdown          []ScoreBreakdown `json:"breakdown"`
}

type MatchResult struct {
	MatchID            string     `json:"matchId"`
	User1ID            string     `json:"user1Id"`
	User2ID            string     `json:"user2Id"`
	Character1ID       string     `json:"character1Id"`
	Character2ID       string     `json:"character2Id"`
	Scores             MatchScore `json:"scores"`
	CompatibilityLevel string     `json:"compatibilityLevel"`
	Recommendation     string     `json:"recommendation"`
	CalculatedAt       time.Time  `json:"calculatedAt"`
}
