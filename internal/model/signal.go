package model

// SignalType classifies the outcome of evaluating one symbol.
type SignalType string

const (
	SignalBuy     SignalType = "BUY"
	SignalSell    SignalType = "SELL"
	SignalNeutral SignalType = "NEUTRAL"

	// SignalError marks a batch record whose underlying scan failed.
	SignalError SignalType = "ERROR"
)

// Signal is the evaluated trade signal for one symbol.
type Signal struct {
	Type       SignalType
	Strength   float64 // 0-100, always 0 for neutral
	RSI        float64
	StochD     float64
	MACD       float64
	MACDSignal float64
	Reason     string
}

// Actionable reports whether the signal is directional and at least
// minStrength strong.
func (s *Signal) Actionable(minStrength float64) bool {
	return s.Type != SignalNeutral && s.Type != SignalError && s.Strength >= minStrength
}

// ScanResult is the outcome of fetching one symbol during a scan.
// Exactly one of Series and Err is set.
type ScanResult struct {
	Symbol string
	Series *Series
	Err    error
}

// SymbolSignal pairs a symbol with its evaluated signal. Err carries the
// original scan error for records whose signal is SignalError.
type SymbolSignal struct {
	Symbol string
	Signal *Signal
	Err    error
}
