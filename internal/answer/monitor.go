package answer

// Monitor receives events while the engine walks the cascade. Implementations
// must be safe for concurrent use when an Engine is shared.
type Monitor interface {
	Start(query string, keywords []string)
	TierAttempted(s Strategy)
	TierFailed(s Strategy, err error)
	TierEmpty(s Strategy)
	TierMatched(s Strategy, candidates int)
	Finish(res Result)
}

type noopMonitor struct{}

var _ Monitor = noopMonitor{}

func (noopMonitor) Start(string, []string)     {}
func (noopMonitor) TierAttempted(Strategy)     {}
func (noopMonitor) TierFailed(Strategy, error) {}
func (noopMonitor) TierEmpty(Strategy)         {}
func (noopMonitor) TierMatched(Strategy, int)  {}
func (noopMonitor) Finish(Result)              {}

// Monitors fans events out to several monitors in order.
type Monitors []Monitor

var _ Monitor = Monitors(nil)

func (ms Monitors) Start(query string, keywords []string) {
	for _, m := range ms {
		m.Start(query, keywords)
	}
}

func (ms Monitors) TierAttempted(s Strategy) {
	for _, m := range ms {
		m.TierAttempted(s)
	}
}

func (ms Monitors) TierFailed(s Strategy, err error) {
	for _, m := range ms {
		m.TierFailed(s, err)
	}
}

func (ms Monitors) TierEmpty(s Strategy) {
	for _, m := range ms {
		m.TierEmpty(s)
	}
}

func (ms Monitors) TierMatched(s Strategy, candidates int) {
	for _, m := range ms {
		m.TierMatched(s, candidates)
	}
}

func (ms Monitors) Finish(res Result) {
	for _, m := range ms {
		m.Finish(res)
	}
}
