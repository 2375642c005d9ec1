package email

const (
	subjectWelcome            = "Welcome to Guesthouse Safety"
	subjectAssessmentReadyFmt = "Safety assessment ready for %s"
)
