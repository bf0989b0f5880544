package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchName(t *testing.T) {
	testCases := []struct {
		name     string
		matchers []string
		expected bool
	}{
		{name: "AK-47 | Redline (Field-Tested)", matchers: []string{"redline"}, expected: true},
		{name: "AK-47 | Redline (Field-Tested)", matchers: []string{"asiimov", "FIELD-tested"}, expected: true},
		{name: "AWP  |\tAsiimov", matchers: []string{"awp | asiimov"}, expected: true},
		{name: "AWP | Asiimov", matchers: []string{"howl"}, expected: false},
		{name: "anything", matchers: nil, expected: true},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, MatchName(tc.name, tc.matchers), tc.name)
	}
}
