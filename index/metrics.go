package index

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Insert()   {}
func (NoopMetrics) Remove()   {}
func (NoopMetrics) Finalize() {}
func (NoopMetrics) Size(int)  {}

var _ Metrics = NoopMetrics{}
