// ABOUTME: Advisory messages attached to calculator results
// ABOUTME: Each recommendation carries a category, a display icon, and a message

package models

// RecommendationType categorizes a recommendation for display
type RecommendationType string

const (
	RecommendationInsight     RecommendationType = "insight"
	RecommendationSuggestion  RecommendationType = "suggestion"
	RecommendationOpportunity RecommendationType = "opportunity"
	RecommendationStrategy    RecommendationType = "strategy"
	RecommendationSuccess     RecommendationType = "success"
	RecommendationInfo        RecommendationType = "info"
	RecommendationCaution     RecommendationType = "caution"
	RecommendationWarning     RecommendationType = "warning"
)

// Recommendation represents a qualitative hint produced alongside a calculation
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Icon    string             `json:"icon"`
	Message string             `json:"message"`
}
