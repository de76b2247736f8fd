package sanitizer

const (
	MinAmount = 0

	MaxAmount = 1_000_000
)

// ClampAmount keeps booking amounts inside the range the platform accepts.
// Values outside the range are pinned, not rejected.
func ClampAmount(amount int64) int64 {
	if amount < MinAmount {
		return MinAmount
	}
	if amount > MaxAmount {
		return MaxAmount
	}
	return amount
}
