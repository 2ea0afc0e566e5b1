package model

import "time"

// PlanState is the persisted planning context of the bot owner.
type PlanState struct {
	SurplusCash     float64              `json:"surplus_cash"`
	HorizonDays     int                  `json:"horizon_days"`
	SentWarnings    map[string]time.Time `json:"sent_warnings"`
	LastPlanAt      time.Time            `json:"last_plan_at"`
	LastProjectedAt time.Time            `json:"last_projected_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
