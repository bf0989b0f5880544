package assert

import (
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestNotNil(t *testing.T) {
	var client *resty.Client
	require.Panics(t, func() { NotNil(client) })
	require.NotPanics(t, func() { NotNil(resty.New()) })
}
