package synerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrIncompatibleTarget, ErrMissingRequiredOption) {
		t.Fatalf("ErrIncompatibleTarget and ErrMissingRequiredOption should not be equal")
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("target: %w", ErrIncompatibleTarget)
	if !errors.Is(wrapped, ErrIncompatibleTarget) {
		t.Fatalf("wrapped error should still match ErrIncompatibleTarget via errors.Is")
	}
	if errors.Is(wrapped, ErrMissingRequiredOption) {
		t.Fatalf("wrapped ErrIncompatibleTarget should not match ErrMissingRequiredOption")
	}
}
