package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid name", err: ErrInvalidName, wantStatus: http.StatusBadRequest, wantCode: "NAME_INVALID"},
		{name: "weak password", err: ErrWeakPassword, wantStatus: http.StatusBadRequest, wantCode: "PASSWORD_WEAK"},
		{name: "user exists", err: ErrUserExists, wantStatus: http.StatusBadRequest, wantCode: "USER_EXISTS"},
		{name: "missing token", err: ErrNoToken, wantStatus: http.StatusBadRequest, wantCode: "TOKEN_INVALID"},
		{name: "invalid token", err: ErrInvalidToken, wantStatus: http.StatusBadRequest, wantCode: "TOKEN_INVALID"},
		{name: "user not found", err: ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: "USER_NOT_FOUND"},
		{name: "invalid credentials", err: ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: "INVALID_CREDENTIALS"},
		{name: "email not verified", err: ErrEmailNotVerified, wantStatus: http.StatusUnauthorized, wantCode: "EMAIL_NOT_VERIFIED"},
		{name: "unauthenticated", err: ErrNotAuthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHENTICATED"},
		{name: "role forbidden", err: ErrRoleNotAllowed, wantStatus: http.StatusForbidden, wantCode: "ROLE_FORBIDDEN"},
		{name: "status reverted", err: ErrStatusReverted, wantStatus: http.StatusBadRequest, wantCode: "JOB_STATUS_REVERTED"},
		{name: "job not found", err: ErrJobNotFound, wantStatus: http.StatusNotFound, wantCode: "JOB_NOT_FOUND"},
		{name: "not job owner", err: ErrNotJobOwner, wantStatus: http.StatusForbidden, wantCode: "NOT_JOB_OWNER"},
		{name: "resume type", err: ErrResumeType, wantStatus: http.StatusBadRequest, wantCode: "RESUME_TYPE_INVALID"},
		{name: "already applied", err: ErrAlreadyApplied, wantStatus: http.StatusBadRequest, wantCode: "ALREADY_APPLIED"},
		{name: "application not found", err: ErrApplicationNotFound, wantStatus: http.StatusNotFound, wantCode: "APPLICATION_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_UnknownErrorHidesDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "SERVER_ERROR", httpErr.Code)
	assert.Equal(t, "Server error", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "dial tcp")
}
