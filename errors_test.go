package fat

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		fr   fileResult
		want error
	}{
		{frNoFilesystem, ErrNoFAT},
		{frDiskErr, ErrIO},
		{frInvalidParameter, ErrParam},
		{frNoFile, ErrPath},
		{frExist, ErrDenied},
		{frIntErr, ErrBroken},
	}
	for _, c := range cases {
		err := classify(c.fr)
		if !errors.Is(err, c.want) {
			t.Errorf("classify(%v): expected errors.Is match with %v, got %v", c.fr, c.want, err)
		}
		if !errors.Is(err, c.fr) {
			t.Errorf("classify(%v): expected errors.Is match with underlying code", c.fr)
		}
	}
}

func TestClassifyOK(t *testing.T) {
	if classify(frOK) != nil {
		t.Fatal("classify(frOK) should be nil")
	}
}
