package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIPv4(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.Error(t, err)
}
