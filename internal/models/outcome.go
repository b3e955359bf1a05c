package models

// PickOutcome is the ATS result of one pick.
type PickOutcome string

const (
	OutcomeWin       PickOutcome = "WIN"
	OutcomeLoss      PickOutcome = "LOSS"
	OutcomePush      PickOutcome = "PUSH"
	OutcomeUndecided PickOutcome = "UNDECIDED"
)

// PropOutcome is the grading result of one prop pick.
type PropOutcome string

const (
	PropWin      PropOutcome = "WIN"
	PropLoss     PropOutcome = "LOSS"
	PropUngraded PropOutcome = "UNGRADED"
)
