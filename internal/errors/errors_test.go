package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorRendering(t *testing.T) {
	plain := New(NoEnclosingNode, "nothing here")
	if !strings.Contains(plain.Error(), "NO_ENCLOSING_NODE") {
		t.Errorf("Error() = %q, want the code in it", plain.Error())
	}
	if !strings.Contains(plain.Error(), "nothing here") {
		t.Errorf("Error() = %q, want the message in it", plain.Error())
	}

	wrapped := Wrap(IOFailure, "reading file", fmt.Errorf("disk on fire"))
	if !strings.Contains(wrapped.Error(), "disk on fire") {
		t.Errorf("Error() = %q, want the cause in it", wrapped.Error())
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", New(ParseUnavailable, "no parser"), ParseUnavailable},
		{"wrapped cause", Wrap(IndexUnavailable, "index", fmt.Errorf("boom")), IndexUnavailable},
		{"fmt-wrapped", fmt.Errorf("outer: %w", New(NoEnclosingCall, "no call")), NoEnclosingCall},
		{"foreign error", fmt.Errorf("plain"), Internal},
		{"nil", nil, Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := Newf(NoEnclosingNode, "offset %d", 42)
	if !Is(err, NoEnclosingNode) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, IOFailure) {
		t.Error("Is() = true for mismatched code")
	}
	if Is(nil, IOFailure) {
		t.Error("Is(nil) = true")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(Internal, "context", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}
