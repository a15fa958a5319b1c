package flow

// Step is the engine's position in the conversation. Closed set.
type Step string

const (
	StepGreeting       Step = "GREETING"
	StepAskDestination Step = "ASK_DESTINATION"
	StepAskDates       Step = "ASK_DATES"
	StepAskPeople      Step = "ASK_PEOPLE"
	StepWaitingVideo   Step = "WAITING_VIDEO"
	StepCompleted      Step = "COMPLETED"
	StepFAQCategory    Step = "FAQ_CATEGORY"
	StepFAQAnswer      Step = "FAQ_ANSWER"
)

func (s Step) Valid() bool {
	switch s {
	case StepGreeting, StepAskDestination, StepAskDates, StepAskPeople,
		StepWaitingVideo, StepCompleted, StepFAQCategory, StepFAQAnswer:
		return true
	}
	return false
}

func (s Step) inFAQ() bool { return s == StepFAQCategory || s == StepFAQAnswer }

// Free text is only treated as a catalog search once name and destination
// are no longer being collected.
func (s Step) allowsCatalogSearch() bool {
	switch s {
	case StepGreeting, StepAskDestination, StepWaitingVideo, StepFAQCategory, StepFAQAnswer:
		return false
	}
	return true
}
