package payments

// CalculateInstructorAmount returns the instructor's share of a sale after
// the platform commission. Pure function, used by the payout run; the
// payment ledger itself always records the provider-confirmed amount.
func CalculateInstructorAmount(coursePrice, commissionPercent float64) float64 {
	return coursePrice * (1 - commissionPercent/100)
}
