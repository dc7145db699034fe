package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidName is returned when a registration name is not two alphabetic tokens.
	ErrInvalidName = errors.New("Invalid name format")
	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("Invalid email")
	// ErrWeakPassword is returned when a password fails the strength policy.
	ErrWeakPassword = errors.New("Password not strong enough")
	// ErrInvalidRole is returned when a role is neither applicant nor company.
	ErrInvalidRole = errors.New("Invalid role")
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("User already exists")
	// ErrNoToken is returned when a verification request carries no token.
	ErrNoToken = errors.New("No token provided")
	// ErrInvalidToken is returned when a verification token is malformed.
	ErrInvalidToken = errors.New("Invalid token")
	// ErrUserNotFound is returned when a token's subject no longer exists.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrEmailNotVerified is returned when a login hits an unverified account.
	ErrEmailNotVerified = errors.New("Email not verified")
	// ErrNotAuthorized is returned when a request carries no usable identity.
	ErrNotAuthorized = errors.New("Not authorized")
	// ErrRoleNotAllowed is returned when the identity's role is outside the allowed set.
	ErrRoleNotAllowed = errors.New("Role not authorized")

	// ErrInvalidTitle is returned when a job title is missing or too long.
	ErrInvalidTitle = errors.New("Invalid or missing title")
	// ErrInvalidDescription is returned when a job description is outside 20-2000 chars.
	ErrInvalidDescription = errors.New("Invalid or missing description")
	// ErrInvalidJobStatus is returned when a job status is not Draft, Open or Closed.
	ErrInvalidJobStatus = errors.New("Invalid status value")
	// ErrStatusReverted is returned when a job status update moves backward.
	ErrStatusReverted = errors.New("Status cannot be reverted to a previous state")
	// ErrJobNotFound is returned when a referenced job is absent.
	ErrJobNotFound = errors.New("Job not found")
	// ErrNotJobOwner is returned when the requester does not own the job.
	ErrNotJobOwner = errors.New("Unauthorized access")

	// ErrResumeRequired is returned when an application carries no resume file.
	ErrResumeRequired = errors.New("Resume required")
	// ErrResumeType is returned when the resume is neither pdf nor docx.
	ErrResumeType = errors.New("Only pdf and docx allowed")
	// ErrCoverLetterTooLong is returned when a cover letter exceeds 200 chars.
	ErrCoverLetterTooLong = errors.New("Cover letter too long")
	// ErrAlreadyApplied is returned when the applicant already applied to the job.
	ErrAlreadyApplied = errors.New("Already applied")
	// ErrApplicationNotFound is returned when a referenced application is absent.
	ErrApplicationNotFound = errors.New("Application not found")
	// ErrInvalidAppStatus is returned when an application status value is unknown.
	ErrInvalidAppStatus = errors.New("Invalid status")
)

// ErrorResponse represents a standardized error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// a server fault and must not leak detail to the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidName:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NAME_INVALID")
	case ErrInvalidEmail:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_INVALID")
	case ErrWeakPassword:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_WEAK")
	case ErrInvalidRole:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ROLE_INVALID")
	case ErrUserExists:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_EXISTS")
	case ErrNoToken, ErrInvalidToken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOKEN_INVALID")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrEmailNotVerified:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_VERIFIED")
	case ErrNotAuthorized:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case ErrRoleNotAllowed:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ROLE_FORBIDDEN")
	case ErrInvalidTitle:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TITLE_INVALID")
	case ErrInvalidDescription:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DESCRIPTION_INVALID")
	case ErrInvalidJobStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "JOB_STATUS_INVALID")
	case ErrStatusReverted:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "JOB_STATUS_REVERTED")
	case ErrJobNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "JOB_NOT_FOUND")
	case ErrNotJobOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_JOB_OWNER")
	case ErrResumeRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESUME_REQUIRED")
	case ErrResumeType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESUME_TYPE_INVALID")
	case ErrCoverLetterTooLong:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COVER_LETTER_TOO_LONG")
	case ErrAlreadyApplied:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_APPLIED")
	case ErrApplicationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPLICATION_NOT_FOUND")
	case ErrInvalidAppStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "APPLICATION_STATUS_INVALID")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error", "SERVER_ERROR")
	}
}
