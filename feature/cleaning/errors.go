package cleaning

import "fmt"

// CleaningError reports the step that aborted a cleaning pass. The pass was
// rolled back; nothing it did is visible to readers.
type CleaningError struct {
	Step string
	Err  error
}

func (e *CleaningError) Error() string {
	return fmt.Sprintf("cleaning failed at %s: %v", e.Step, e.Err)
}

func (e *CleaningError) Unwrap() error {
	return e.Err
}
