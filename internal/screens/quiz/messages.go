package quiz

// recordedMsg reports the outcome of writing session activity to the
// journal.
type recordedMsg struct {
	What string
	Err  error
}
