package user

import "time"

// TrialDays is the length of the free trial window.
const TrialDays = 14

// Entitlement is the derived access state for an account. It is
// recomputed on every request and never persisted.
type Entitlement struct {
	TrialActive        bool `json:"is_trial_active"`
	TrialDaysRemaining int  `json:"trial_days_remaining"`
	CanAccessApp       bool `json:"can_access_app"`
	IsPro              bool `json:"is_pro"`
}

// Evaluate computes the entitlement for a user at the given instant.
// It is a pure function of (now, TrialStart, SubscriptionActive,
// PlanType): no side effects, deterministic, inputs untouched.
//
// A missing TrialStart is treated as a trial starting now, i.e. the
// full window remains.
func Evaluate(now time.Time, u *User) Entitlement {
	trialStart := now
	if u.TrialStart != nil {
		trialStart = *u.TrialStart
	}
	trialEnd := trialStart.Add(TrialDays * 24 * time.Hour)

	trialActive := !now.After(trialEnd)

	daysRemaining := 0
	if remaining := trialEnd.Sub(now); remaining > 0 {
		daysRemaining = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	}

	canAccess := u.SubscriptionActive || trialActive

	return Entitlement{
		TrialActive:        trialActive,
		TrialDaysRemaining: daysRemaining,
		CanAccessApp:       canAccess,
		IsPro:              u.PlanType == PlanTypePro && canAccess,
	}
}
