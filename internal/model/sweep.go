package model

// SweepReport counts the records each sweep stage deactivated.
type SweepReport struct {
	ExpiredDares         int
	LowEngagementDares   int
	LowSmilesCompletions int
}
