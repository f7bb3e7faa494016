package types

const ContextUserKey = "user"

const (
	MessageUnauthorized  = "Unauthorized"
	MessageInternalError = "Internal Server Error"
	NotFoundID           = "not_found"
)
