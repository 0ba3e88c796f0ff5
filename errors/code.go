package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessCode is used when no error happened.
	SuccessCode uint32 = 0

	// All errors that do not wrap a registered root error are clubbed
	// under an internal code and a generic message.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the message of an error as it should be
// presented to a client. Errors that are not rooted in a registered error
// are internal. Their message is redacted unless debug is set.
func Info(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessCode, ""
	}
	code := Code(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode || code == ErrPanic.code {
		return code, internalLog
	}
	return code, err.Error()
}

type coder interface {
	Code() uint32
}

// Code unwraps given error and returns the code of the registered root
// error it was created from.
func Code(err error) uint32 {
	if isNil(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
