package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/cooloff/errors"
)

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	Nil(t, nil)
	Nil(t, nilErr)
	Nil(t, []byte(nil))

	ft := &fakeTester{}
	Nil(ft, 1)
	if !ft.failed {
		t.Fatal("non nil value accepted")
	}
}

func TestEqual(t *testing.T) {
	Equal(t, []byte("a"), []byte("a"))

	ft := &fakeTester{}
	Equal(ft, 1, int64(1))
	if !ft.failed {
		t.Fatal("different types accepted")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "gone"))
	IsErr(t, nil, nil)
}

func TestPanics(t *testing.T) {
	Panics(t, func() { panic("boom") })
}

type fakeTester struct {
	failed bool
}

func (*fakeTester) Helper() {}

func (f *fakeTester) Fatal(args ...interface{}) {
	f.failed = true
}

func (f *fakeTester) Fatalf(format string, args ...interface{}) {
	f.Fatal(fmt.Sprintf(format, args...))
}
