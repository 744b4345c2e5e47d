package usecase

import "github.com/kirillkom/docqa-client/internal/core/domain"

const (
	MsgUploadSucceeded    = "PDF uploaded successfully!"
	MsgMissingInput       = "Please select a PDF file!"
	MsgUploadFailed       = "Error uploading the PDF!"
	MsgPreconditionFailed = "Upload a PDF first, then type a question!"
	MsgQueryFailed        = "Error querying the AI!"
)

const (
	outcomeSuccess      = "success"
	outcomeMissingInput = "missing_input"
	outcomePrecondition = "precondition"
	outcomeUploadError  = "upload_error"
	outcomeQueryError   = "query_error"
	outcomeUnknown      = "unknown"
)

// UserMessage maps a coordinator error to the text shown to the user.
func UserMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrMissingInput:
		return MsgMissingInput
	case domain.ErrPrecondition:
		return MsgPreconditionFailed
	case domain.ErrUpload:
		return MsgUploadFailed
	case domain.ErrQuery:
		return MsgQueryFailed
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}

func notificationKind(err error) domain.NotificationKind {
	switch domain.KindOf(err) {
	case domain.ErrMissingInput:
		return domain.NotifyMissingInput
	case domain.ErrPrecondition:
		return domain.NotifyPreconditionFailed
	case domain.ErrQuery:
		return domain.NotifyQueryFailed
	default:
		return domain.NotifyUploadFailed
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	switch domain.KindOf(err) {
	case domain.ErrMissingInput:
		return outcomeMissingInput
	case domain.ErrPrecondition:
		return outcomePrecondition
	case domain.ErrUpload:
		return outcomeUploadError
	case domain.ErrQuery:
		return outcomeQueryError
	default:
		return outcomeUnknown
	}
}
