package email

const (
	subjectServiceSubmittedFmt = "New service listing awaiting approval: %s"
	subjectServiceEditedFmt    = "Service listing updated: %s"
	subjectStableSubmittedFmt  = "New stable awaiting approval: %s"
)
