package appointment

// StepResult records the outcome of one best-effort side effect. Failures here
// are observability events, never caller-visible errors.
type StepResult struct {
	Name string
	Err  error
}

func (r StepResult) OK() bool {
	return r.Err == nil
}

// Report is the outcome of a lifecycle workflow. Message reflects only the
// primary transition; Steps carries the tagged results of the side-effect
// cascade that ran after the commit point.
type Report struct {
	AppointmentID string
	Message       string
	AlreadyDone   bool
	Notified      int
	Steps         []StepResult
}

func (r *Report) addStep(name string, err error) {
	r.Steps = append(r.Steps, StepResult{Name: name, Err: err})
}

// FailedSteps returns the side effects that did not complete.
func (r *Report) FailedSteps() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}
