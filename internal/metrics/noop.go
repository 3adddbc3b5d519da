package metrics

// NoopCollector is a no-op implementation of the service recorder
// interfaces.
type NoopCollector struct{}

func (NoopCollector) RecordProbe(bool)            {}
func (NoopCollector) RecordLoad(string)           {}
func (NoopCollector) RecordPayment(string, int64) {}
func (NoopCollector) RecordTopUp(string, int64)   {}
func (NoopCollector) RecordBalance(int64)         {}
