// internal/recommendation/engine.go
// Pure scoring engine. Takes a preference profile and candidate items and
// produces weighted scores; it never fetches candidates itself.

package recommendation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vivafit/vivafit-backend/internal/preferences"
)

// Weights per content type. Branch weights are disjoint and do not need to
// sum to 1; the final score is clamped to [0,1].
const (
	weightGoal       = 0.30
	weightActivity   = 0.25
	weightExperience = 0.20
	weightTimeFit    = 0.10
	weightDietary    = 0.15
	weightBudget     = 0.20
	weightDietaryPro = 0.20
	weightFeatures   = 0.30
)

type Engine struct {
	prefs *preferences.UserPreferences
}

// NewEngine binds an engine to a preference profile. The engine itself is
// stateless; rebuild it whenever preferences change.
func NewEngine(prefs *preferences.UserPreferences) *Engine {
	if prefs == nil {
		prefs = preferences.DefaultPreferences()
	}
	return &Engine{prefs: prefs}
}

// RecommendVideos scores and ranks video candidates
func (e *Engine) RecommendVideos(candidates []Video, filters *Filters) []RecommendedItem[Video] {
	scored := make([]RecommendedItem[Video], 0, len(candidates))

	for _, video := range candidates {
		score, reasons := e.scoreVideo(video)
		scored = append(scored, newRecommendedItem(video, score, reasons))
	}

	return applyFilters(scored, filters, func(v Video) string { return v.Category })
}

// RecommendProducts scores and ranks product candidates
func (e *Engine) RecommendProducts(candidates []Product, filters *Filters) []RecommendedItem[Product] {
	scored := make([]RecommendedItem[Product], 0, len(candidates))

	for _, product := range candidates {
		score, reasons := e.scoreProduct(product)
		scored = append(scored, newRecommendedItem(product, score, reasons))
	}

	return applyFilters(scored, filters, func(p Product) string { return p.Category })
}

// RecommendApps scores and ranks companion-app candidates
func (e *Engine) RecommendApps(candidates []App, filters *Filters) []RecommendedItem[App] {
	scored := make([]RecommendedItem[App], 0, len(candidates))

	for _, app := range candidates {
		score, reasons := e.scoreApp(app)
		scored = append(scored, newRecommendedItem(app, score, reasons))
	}

	return applyFilters(scored, filters, func(a App) string { return a.Category })
}

func (e *Engine) scoreVideo(video Video) (float64, []string) {
	reasons := []string{}

	goal := e.goalAlignment(video.Category, video.Tags)
	activity := e.activityFit(video.Category, video.Tags)
	experience := e.experienceFit(video.Tags)
	timeFit := e.timeFit(video.Duration)

	total := goal*weightGoal + activity*weightActivity +
		experience*weightExperience + timeFit*weightTimeFit

	if isNutritionContent(video.Category, video.Tags) {
		dietary := e.dietaryFit(video.Tags)
		total += dietary * weightDietary
		if dietary > 0.7 {
			reasons = append(reasons, reasonDietary)
		}
	}

	if goal > 0.7 {
		reasons = append(reasons, reasonGoal)
	}
	if activity > 0.7 {
		reasons = append(reasons, reasonActivity)
	}
	if experience > 0.7 {
		reasons = append(reasons, reasonExperience)
	}
	if timeFit > 0.7 {
		reasons = append(reasons, reasonTimeFit)
	}

	return clamp01(total), reasons
}

func (e *Engine) scoreProduct(product Product) (float64, []string) {
	reasons := []string{}

	goal := e.goalAlignment(product.Category, product.Tags)
	activity := e.activityFit(product.Category, product.Tags)
	experience := e.experienceFit(product.Tags)
	budget := e.budgetFit(product.Price)

	total := goal*weightGoal + activity*weightActivity +
		experience*weightExperience + budget*weightBudget

	if isNutritionContent(product.Category, product.Tags) {
		dietary := e.dietaryFit(product.Tags)
		total += dietary * weightDietaryPro
		if dietary > 0.7 {
			reasons = append(reasons, reasonDietary)
		}
	}

	if goal > 0.7 {
		reasons = append(reasons, reasonGoal)
	}
	if activity > 0.7 {
		reasons = append(reasons, reasonActivity)
	}
	if experience > 0.7 {
		reasons = append(reasons, reasonExperience)
	}
	if budget > 0.7 {
		reasons = append(reasons, reasonBudget)
	}

	return clamp01(total), reasons
}

func (e *Engine) scoreApp(app App) (float64, []string) {
	reasons := []string{}

	goal := e.goalAlignment(app.Category, nil)
	activity := e.activityFit(app.Category, nil)
	experience := e.experienceFit(app.Features)
	features := e.featureAlignment(app)

	total := goal*weightGoal + activity*weightActivity +
		experience*weightExperience + features*weightFeatures

	if goal > 0.7 {
		reasons = append(reasons, reasonGoal)
	}
	if activity > 0.7 {
		reasons = append(reasons, reasonActivity)
	}
	if features > 0.7 {
		reasons = append(reasons, reasonFeatures)
	}

	return clamp01(total), reasons
}

// goalAlignment: category match contributes 0.4, each matching tag 0.2,
// capped at 1. Unknown goals have no keyword list and contribute 0.
func (e *Engine) goalAlignment(category string, tags []string) float64 {
	keywords := goalKeywords[e.prefs.FitnessGoal]
	if len(keywords) == 0 {
		return 0
	}

	score := 0.0
	if matchesAny(category, keywords) {
		score += 0.4
	}
	for _, tag := range tags {
		if matchesAny(tag, keywords) {
			score += 0.2
		}
	}

	return clamp01(score)
}

// activityFit: category match 0.3, tag match 0.15; defaults to 0.5 when
// nothing matches
func (e *Engine) activityFit(category string, tags []string) float64 {
	keywords := activityKeywords[e.prefs.ActivityLevel]

	score := 0.0
	if matchesAny(category, keywords) {
		score += 0.3
	}
	for _, tag := range tags {
		if matchesAny(tag, keywords) {
			score += 0.15
		}
	}

	if score == 0 {
		return 0.5
	}
	return clamp01(score)
}

// experienceFit: tag matches only, 0.3 each; defaults to 0.6
func (e *Engine) experienceFit(tags []string) float64 {
	keywords := experienceKeywords[e.prefs.ExperienceLevel]

	score := 0.0
	for _, tag := range tags {
		if matchesAny(tag, keywords) {
			score += 0.3
		}
	}

	if score == 0 {
		return 0.6
	}
	return clamp01(score)
}

// timeFit extracts the leading integer from a duration string ("25 min")
// and compares against the user's available minutes
func (e *Engine) timeFit(duration string) float64 {
	minutes, ok := leadingInt(duration)
	if !ok || e.prefs.TimeAvailable <= 0 {
		return 0.5
	}

	available := float64(e.prefs.TimeAvailable)
	switch {
	case float64(minutes) <= available:
		return 1.0
	case float64(minutes) <= available*1.2:
		return 0.8
	case float64(minutes) <= available*1.5:
		return 0.6
	default:
		return 0.3
	}
}

// dietaryFit: 0.8 when the user has no restrictions; otherwise 0.3 per tag
// matching a restriction keyword, 0.5 when nothing matched
func (e *Engine) dietaryFit(tags []string) float64 {
	if len(e.prefs.DietaryRestrictions) == 0 {
		return 0.8
	}

	score := 0.0
	for _, restriction := range e.prefs.DietaryRestrictions {
		keywords := dietaryKeywords[restriction]
		for _, tag := range tags {
			if matchesAny(tag, keywords) {
				score += 0.3
			}
		}
	}

	if score == 0 {
		return 0.5
	}
	return clamp01(score)
}

// budgetFit compares price against the user's budget tier
func (e *Engine) budgetFit(price float64) float64 {
	tier, ok := budgetTiers[e.prefs.BudgetLevel]
	if !ok {
		tier = budgetTiers["medium"]
	}

	switch {
	case price <= tier.Optimal:
		return 1.0
	case price <= tier.Max:
		return 0.7
	default:
		return 0.3
	}
}

// featureAlignment scores app features against the user's toggles and
// equipment
func (e *Engine) featureAlignment(app App) float64 {
	score := 0.0

	if e.prefs.EnableSmartRecommendations && hasFeature(app.Features, "ai") {
		score += 0.3
	}
	if e.prefs.EnableNutritionalAlerts && containsFold(app.Category, "nutri") {
		score += 0.3
	}
	if containsFold(app.Category, "fitness") {
		description := strings.ToLower(app.Description)
		for _, equipment := range e.prefs.Equipment {
			if equipment != "" && strings.Contains(description, strings.ToLower(equipment)) {
				score += 0.4
				break
			}
		}
	}

	return clamp01(score)
}

// applyFilters runs minScore, category OR-filter, stable sort by score
// descending (ties keep input order), then truncation
func applyFilters[T any](items []RecommendedItem[T], filters *Filters, category func(T) string) []RecommendedItem[T] {
	if filters == nil {
		filters = &Filters{}
	}

	filtered := make([]RecommendedItem[T], 0, len(items))
	for _, item := range items {
		if filters.MinScore > 0 && item.Score < filters.MinScore {
			continue
		}
		if len(filters.Categories) > 0 && !matchesAny(category(item.Item), filters.Categories) {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	if filters.MaxItems > 0 && len(filtered) > filters.MaxItems {
		filtered = filtered[:filters.MaxItems]
	}

	return filtered
}

func newRecommendedItem[T any](item T, score float64, reasons []string) RecommendedItem[T] {
	category := categoryFor(score)
	return RecommendedItem[T]{
		Item:               item,
		Score:              score,
		Reasons:            reasons,
		Category:           category,
		PersonalizedReason: personalizedReasonFor(category),
	}
}

// Helpers

func matchesAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasFeature(features []string, name string) bool {
	for _, feature := range features {
		if strings.EqualFold(strings.TrimSpace(feature), name) {
			return true
		}
	}
	return false
}

func isNutritionContent(category string, tags []string) bool {
	if containsFold(category, "nutri") {
		return true
	}
	for _, tag := range tags {
		if containsFold(tag, "nutri") {
			return true
		}
	}
	return false
}

// leadingInt extracts the integer prefix of a duration string
func leadingInt(s string) (int, bool) {
	trimmed := strings.TrimSpace(s)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
