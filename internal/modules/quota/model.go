package quota

import "errors"

// ErrQuotaExhausted is returned when a user has no plan generations remaining
// for the current month.
var ErrQuotaExhausted = errors.New("quota exhausted")

// DefaultMonthlyPlans is the number of plan generations granted per month.
const DefaultMonthlyPlans = 30
