package reporter

// CompositeReporter fans every call out to a list of Reporters, e.g. a
// terminal reporter for interactive output plus a log reporter for the run
// log, exactly as cmd/scrollcast wires them.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter builds a CompositeReporter from the given reporters,
// skipping any nil entries.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	c := &CompositeReporter{}
	for _, r := range reporters {
		if r != nil {
			c.reporters = append(c.reporters, r)
		}
	}
	return c
}

func (c *CompositeReporter) Init(s InitSummary) {
	for _, r := range c.reporters {
		r.Init(s)
	}
}

func (c *CompositeReporter) StageProgress(s StageProgress) {
	for _, r := range c.reporters {
		r.StageProgress(s)
	}
}

func (c *CompositeReporter) EncodingStarted(total int) {
	for _, r := range c.reporters {
		r.EncodingStarted(total)
	}
}

func (c *CompositeReporter) Progress(p ProgressSnapshot) {
	for _, r := range c.reporters {
		r.Progress(p)
	}
}

func (c *CompositeReporter) ValidationComplete(s ValidationSummary) {
	for _, r := range c.reporters {
		r.ValidationComplete(s)
	}
}

func (c *CompositeReporter) Complete(o Outcome) {
	for _, r := range c.reporters {
		r.Complete(o)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(e ReporterError) {
	for _, r := range c.reporters {
		r.Error(e)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
