package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCodeRegistered   = 990001
	testCodeUnregistered = 990999
)

func init() {
	MustRegister(NewCoder(testCodeRegistered, http.StatusTeapot, "Registered test error"))
}

func TestWithCode_ParseCoder(t *testing.T) {
	err := WithCode(testCodeRegistered, "something broke: %s", "disk")
	require.Error(t, err)
	assert.Equal(t, "something broke: disk", err.Error())

	coder := ParseCoder(err)
	assert.Equal(t, testCodeRegistered, coder.Code())
	assert.Equal(t, http.StatusTeapot, coder.HTTPStatus())
	assert.Equal(t, "Registered test error", coder.String())
}

func TestWrapC_KeepsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapC(cause, testCodeRegistered, "context")

	assert.Equal(t, "context: root cause", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, testCodeRegistered, ParseCoder(err).Code())
}

func TestWrapC_NilIsNil(t *testing.T) {
	assert.Nil(t, WrapC(nil, testCodeRegistered, "ignored"))
}

func TestParseCoder_UncodedFallsBackToUnknown(t *testing.T) {
	coder := ParseCoder(errors.New("plain"))
	assert.Equal(t, 1, coder.Code())
	assert.Equal(t, http.StatusInternalServerError, coder.HTTPStatus())

	coder = ParseCoder(fmt.Errorf("wrapped: %w", errors.New("plain")))
	assert.Equal(t, 1, coder.Code())
}

func TestParseCoder_UnregisteredCodeFallsBackToUnknown(t *testing.T) {
	err := WithCode(testCodeUnregistered, "no registration")
	assert.Equal(t, 1, ParseCoder(err).Code())
}

func TestIsCode(t *testing.T) {
	err := WithCode(testCodeRegistered, "oops")
	assert.True(t, IsCode(err, testCodeRegistered))
	assert.False(t, IsCode(err, testCodeUnregistered))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsCode(wrapped, testCodeRegistered))
}

func TestMustRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegister(NewCoder(testCodeRegistered, http.StatusTeapot, "dup"))
	})
}

func TestRegister_ReservedCodePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(NewCoder(1, http.StatusInternalServerError, "reserved"))
	})
}
