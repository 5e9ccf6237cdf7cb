package email

const (
	subjectInquiryFmt        = "New inquiry from %s"
	subjectInquiryServiceFmt = "New %s inquiry from %s"
)
