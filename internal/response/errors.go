package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// Authentication
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// Authorization
	ErrForbidden           ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly   ErrCode = "STUDENT_ACCESS_ONLY"
	ErrProfessorAccessOnly ErrCode = "PROFESSOR_ACCESS_ONLY"
	ErrAdminAccessOnly     ErrCode = "ADMIN_ACCESS_ONLY"

	// Validation
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// Resources
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// Face recognition
	ErrNoFaceDetected    ErrCode = "NO_FACE_DETECTED"
	ErrNoRegisteredFaces ErrCode = "NO_REGISTERED_FACES"
	ErrFaceNotRegistered ErrCode = "FACE_NOT_REGISTERED"

	// Attendance
	ErrAttendanceLocked ErrCode = "ATTENDANCE_LOCKED"
	ErrScheduleNotFound ErrCode = "SCHEDULE_NOT_FOUND"

	// Rate limiting
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// Upstream / server
	ErrFaceServiceDown ErrCode = "FACE_SERVICE_UNAVAILABLE"
	ErrInternal        ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid email/student number or password."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrProfessorAccessOnly:
		return "This resource is restricted to professors."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid identifier format."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrNoFaceDetected:
		return "No face was detected in the submitted image."
	case ErrNoRegisteredFaces:
		return "No registered faces were found for this section."
	case ErrFaceNotRegistered:
		return "Face registration has not been completed for this account."
	case ErrAttendanceLocked:
		return "Attendance recording is locked for this class."
	case ErrScheduleNotFound:
		return "No class schedule was found for this section."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrFaceServiceDown:
		return "The face recognition service is currently unavailable."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
