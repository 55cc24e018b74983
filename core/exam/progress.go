package exam

// Progress summarizes how far an application went through its stages.
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// GetProgress counts the cleared and selected stages.
// Percentage is rounded half up and is 0 when there are no stages.
func GetProgress(stages []Stage) Progress {
	prog := Progress{Total: len(stages)}
	for _, stage := range stages {
		if stage.Status.Completed() {
			prog.Completed++
		}
	}
	if prog.Total > 0 {
		prog.Percentage = (200*prog.Completed + prog.Total) / (2 * prog.Total)
	}
	return prog
}
