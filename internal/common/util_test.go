package common

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestGenerateRandByteArray_Length(t *testing.T) {
	for _, n := range []int{0, 1, 16, 32} {
		buf := GenerateRandByteArray(n)
		if len(buf) != n {
			t.Fatalf("expected length %d, got %d", n, len(buf))
		}
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	if bytes.Equal(a, b) {
		t.Logf("warning: two 32-byte random buffers are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}

	WipeByteArray(nil)
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("%w: title is required", ErrorValidation)
	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("wrapped validation error lost its sentinel: %v", err)
	}
	if errors.Is(err, ErrorNotFound) {
		t.Fatalf("unexpected match with ErrorNotFound")
	}
}
