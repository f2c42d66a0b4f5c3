package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges:
//   1000-1999: client/validation errors
//   4000-4999: missing or conflicting resources
//   9000-9999: internal errors
const (
	BadRequestBase    ErrorCode = 1000
	NotFoundBase      ErrorCode = 4000
	InternalErrorBase ErrorCode = 9000
)

// Client/validation errors
const (
	InvalidRequestBody    ErrorCode = BadRequestBase + iota // 1000
	MissingParams                                           // 1001
	InvalidParam                                            // 1002
	InvalidTeacherType                                      // 1003
	InvalidEducationLevel                                   // 1004
	MissingReference                                        // 1005
	InvalidImage                                            // 1006
)

// Missing or conflicting resources
const (
	RouteNotFound          ErrorCode = NotFoundBase + iota // 4000
	TeacherNotFound                                        // 4001
	TeacherTypeNotFound                                    // 4002
	EducationLevelNotFound                                 // 4003
)

const (
	DuplicateTeacher ErrorCode = 4090
)

// Internal errors
const (
	Internal            ErrorCode = InternalErrorBase + iota // 9000
	DatabaseUnavailable                                      // 9001
	StorageFailed                                            // 9002
	ServerBusy                                               // 9003
)
