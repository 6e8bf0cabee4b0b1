package metrics

import "github.com/mgrandau/ai-session-tracker-mcp/internal/domain"

// TimeMetrics groups duration figures of an ROI calculation.
type TimeMetrics struct {
	TotalAIMinutes      float64 `json:"total_ai_minutes"`
	TotalAIHours        float64 `json:"total_ai_hours"`
	EstimatedHumanHours float64 `json:"estimated_human_hours"`
	CompletedSessions   int     `json:"completed_sessions"`
}

// CostMetrics groups cost figures of an ROI calculation.
type CostMetrics struct {
	HumanCost     float64 `json:"human_cost"`
	AICost        float64 `json:"ai_cost"`
	OversightCost float64 `json:"oversight_cost"`
	CostSaved     float64 `json:"cost_saved"`
	ROIPercent    float64 `json:"roi_percent"`
}

// ProductivityMetrics groups interaction figures reduced from the unfiltered
// interaction list.
type ProductivityMetrics struct {
	TotalInteractions      int     `json:"total_interactions"`
	AvgEffectiveness       float64 `json:"avg_effectiveness"`
	InteractionsPerSession float64 `json:"interactions_per_session"`
}

// ROIResult is the full outcome of an ROI calculation, echoing the rate
// configuration that produced it.
type ROIResult struct {
	Time         TimeMetrics         `json:"time_metrics"`
	Cost         CostMetrics         `json:"cost_metrics"`
	Productivity ProductivityMetrics `json:"productivity_metrics"`
	ConfigUsed   Config              `json:"config_used"`
}

// CalculateROI reduces the full session mapping and interaction list into
// comparable cost, time and productivity figures.
//
// Only completed sessions outside the oversight exclusion set contribute AI
// time. The human baseline is a fixed multiple of AI time; oversight cost is
// a fixed fraction of AI time at the human rate. ROI is 0 (not an error)
// when the human cost is 0.
func CalculateROI(cfg Config, sessions map[string]domain.Session, interactions []domain.Interaction) ROIResult {
	var totalMinutes float64
	var completed int
	for _, s := range sessions {
		if roiExcludedTaskTypes[s.TaskType] {
			continue
		}
		if s.Status != domain.StatusCompleted {
			continue
		}
		totalMinutes += SessionDuration(s)
		completed++
	}

	aiHours := totalMinutes / 60
	humanHours := aiHours * cfg.HumanTimeMultiplier
	humanCost := humanHours * cfg.HumanHourlyRate

	var aiHourlyRate float64
	if cfg.HoursPerMonth > 0 {
		aiHourlyRate = cfg.AIMonthlyCost / cfg.HoursPerMonth
	}
	oversightCost := aiHours * cfg.OversightRate * cfg.HumanHourlyRate
	aiCost := aiHours*aiHourlyRate + oversightCost

	costSaved := humanCost - aiCost
	var roiPercent float64
	if humanCost > 0 {
		roiPercent = costSaved / humanCost * 100
	}

	var perSession float64
	if completed > 0 {
		perSession = float64(len(interactions)) / float64(completed)
	}

	return ROIResult{
		Time: TimeMetrics{
			TotalAIMinutes:      totalMinutes,
			TotalAIHours:        aiHours,
			EstimatedHumanHours: humanHours,
			CompletedSessions:   completed,
		},
		Cost: CostMetrics{
			HumanCost:     humanCost,
			AICost:        aiCost,
			OversightCost: oversightCost,
			CostSaved:     costSaved,
			ROIPercent:    roiPercent,
		},
		Productivity: ProductivityMetrics{
			TotalInteractions:      len(interactions),
			AvgEffectiveness:       AverageEffectiveness(interactions),
			InteractionsPerSession: perSession,
		},
		ConfigUsed: cfg,
	}
}
