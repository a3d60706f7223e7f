package retention

import (
	"reflect"
	"testing"
)

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"ci", []string{"ci"}},
		{"a, b|c", []string{"a", "b", "c"}},
		{"a,,b", []string{"a", "b"}},
		{" a | b ", []string{"a", "b"}},
		{",|,", nil},
		{"deploy.yml,release.yml", []string{"deploy.yml", "release.yml"}},
	}

	for _, tt := range tests {
		got := SplitPattern(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPattern(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewFilter_AllSentinel(t *testing.T) {
	// "ALL" in any case, empty and absent patterns all resolve to the
	// unrestricted filter, never to "match nothing".
	for _, pattern := range []string{"", "ALL", "all", "All", " all "} {
		f := NewFilter(pattern)
		if !f.Unrestricted() {
			t.Errorf("NewFilter(%q) should be unrestricted", pattern)
		}
		if !f.Matches("success") {
			t.Errorf("NewFilter(%q) should match everything", pattern)
		}
	}
}

func TestNewFilter_Restricted(t *testing.T) {
	f := NewFilter("success,failure")

	if f.Unrestricted() {
		t.Fatal("filter with values should not be unrestricted")
	}

	tests := []struct {
		value string
		want  bool
	}{
		{"success", true},
		{"SUCCESS", true},
		{"Failure", true},
		{"cancelled", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := f.Matches(tt.value); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFilter_Values(t *testing.T) {
	f := NewFilter("failure|success")
	want := []string{"failure", "success"}
	if got := f.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}

	if got := NewFilter("ALL").Values(); got != nil {
		t.Errorf("unrestricted Values() = %v, want nil", got)
	}
}
