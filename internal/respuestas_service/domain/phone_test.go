package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "international format with spaces", input: "+56 9 1234 5678", expected: "912345678"},
		{name: "country code without plus", input: "56912345678", expected: "912345678"},
		{name: "already normalized", input: "912345678", expected: "912345678"},
		{name: "dashes and parentheses", input: "(+56) 9-1234-5678", expected: "912345678"},
		{name: "only one leading 56 stripped", input: "5656912345678", expected: "56912345678"},
		{name: "56 in the middle untouched", input: "91256345678", expected: "91256345678"},
		{name: "empty input", input: "", expected: ""},
		{name: "no digits at all", input: "abc-def", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePhone(tc.input))
		})
	}
}
