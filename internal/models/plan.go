package models

// WeeklyPlan holds the ordered session ids a student is planned for, per
// category, within one week. All seven category keys are always present so
// consumers never need nil checks per key.
type WeeklyPlan map[Category][]string

// NewWeeklyPlan returns a plan with an empty list for every category.
func NewWeeklyPlan() WeeklyPlan {
	plan := make(WeeklyPlan, len(AllCategories))
	for _, c := range AllCategories {
		plan[c] = []string{}
	}
	return plan
}

// Normalise fills in any missing category keys with empty lists. Plans read
// back from storage may predate categories added later.
func (p WeeklyPlan) Normalise() WeeklyPlan {
	if p == nil {
		return NewWeeklyPlan()
	}
	for _, c := range AllCategories {
		if p[c] == nil {
			p[c] = []string{}
		}
	}
	return p
}

// Contains reports whether sessionID is already planned under category.
func (p WeeklyPlan) Contains(category Category, sessionID string) bool {
	for _, id := range p[category] {
		if id == sessionID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate safely.
func (p WeeklyPlan) Clone() WeeklyPlan {
	clone := make(WeeklyPlan, len(p))
	for c, ids := range p {
		copied := make([]string, len(ids))
		copy(copied, ids)
		clone[c] = copied
	}
	return clone
}

// PlanStore is the persisted shape of every weekly plan:
// week-start date -> student id -> plan.
type PlanStore map[string]map[string]WeeklyPlan

// PlanSessionRequest adds or removes one session in a student's weekly plan.
type PlanSessionRequest struct {
	Category  string `json:"category" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}
