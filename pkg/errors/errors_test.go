package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "test message: %s", "value")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_CONFIG: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeMalformedDocument, cause, "parsing panel.svg")

	if err.Code != ErrCodeMalformedDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedDocument)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidConfig, "test"),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidConfig, "test"),
			code:     ErrCodeMalformedTransform,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeMalformedTransform, New(ErrCodeInvalidConfig, "inner"), "outer"),
			code:     ErrCodeMalformedTransform,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidConfig,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "structured error",
			err:      New(ErrCodeStructureNotFound, "no axes group"),
			expected: ErrCodeStructureNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "structured error strips code",
			err:      New(ErrCodeEmptyGeometry, "panel has no drawable content"),
			expected: "panel has no drawable content",
		},
		{
			name:     "plain error passes through",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewPanel(t *testing.T) {
	err := NewPanel(ErrCodeStructureNotFound, "max.svg", "no %s feature", "x-spine")

	if err.Panel != "max.svg" {
		t.Errorf("Panel = %q, want %q", err.Panel, "max.svg")
	}

	expected := "STRUCTURE_NOT_FOUND: panel max.svg: no x-spine feature"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}

	// The message itself stays free of the panel name, so attribution
	// never depends on text matching.
	if err.Message != "no x-spine feature" {
		t.Errorf("Message = %q, want %q", err.Message, "no x-spine feature")
	}
}

func TestAttribute(t *testing.T) {
	coded := New(ErrCodeMalformedTransform, "bad transform")
	if got := Attribute(coded, "a.svg").Panel; got != "a.svg" {
		t.Errorf("Panel = %q, want %q", got, "a.svg")
	}

	plain := Attribute(errors.New("boom"), "b.svg")
	if plain.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", plain.Code, ErrCodeInternal)
	}
	if plain.Panel != "b.svg" {
		t.Errorf("Panel = %q, want %q", plain.Panel, "b.svg")
	}
}

func TestPanelName(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "attributed error",
			err:      NewPanel(ErrCodeStructureNotFound, "x.svg", "no spine"),
			expected: "x.svg",
		},
		{
			name:     "unattributed error",
			err:      New(ErrCodeInvalidConfig, "bad config"),
			expected: "",
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PanelName(tt.err); got != tt.expected {
				t.Errorf("PanelName() = %q, want %q", got, tt.expected)
			}
		})
	}
}
