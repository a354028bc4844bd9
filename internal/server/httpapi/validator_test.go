package httpapi

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator(t *testing.T) {
	v := newRequestValidator()

	require.NoError(t, v.Validate(&RegisterRequest{Name: "A", Email: "a@x.com", Password: "Aa1!aaaa"}))
	require.NoError(t, v.Validate(&UpdateTaskRequest{}))
	require.NoError(t, v.Validate(&LoginRequest{}))

	err := v.Validate(&UpdatePasswordRequest{NewPassword: "Aa1!aaaa"})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, common.FieldError{
		Field:    "oldPassword",
		Message:  common.MsgOldPasswordRequired,
		Location: common.LocationBody,
	}, verr.Fields[0])
}

func TestRequestValidator_NotAStruct(t *testing.T) {
	v := newRequestValidator()

	err := v.Validate("plain string")
	require.Error(t, err)
	var verr *common.ValidationError
	assert.False(t, errors.As(err, &verr))
}
