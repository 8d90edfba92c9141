package reporter

// NullReporter discards all updates. Used when a caller passes no reporter.
type NullReporter struct{}

func (NullReporter) Init(InitSummary)                   {}
func (NullReporter) StageProgress(StageProgress)         {}
func (NullReporter) EncodingStarted(int)                 {}
func (NullReporter) Progress(ProgressSnapshot)           {}
func (NullReporter) ValidationComplete(ValidationSummary) {}
func (NullReporter) Complete(Outcome)                    {}
func (NullReporter) Warning(string)                      {}
func (NullReporter) Error(ReporterError)                 {}
func (NullReporter) Verbose(string)                      {}
