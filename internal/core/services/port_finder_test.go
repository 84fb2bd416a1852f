package services

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()

	_, portStr, err := net.SplitHostPort(busy.Addr().String())
	require.NoError(t, err)
	busyPort, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	port, err := FindAvailablePort(busyPort, busyPort+50)

	require.NoError(t, err)
	assert.NotEqual(t, busyPort, port)
	assert.Greater(t, port, busyPort)
}

func TestFindAvailablePort_EmptyRange(t *testing.T) {
	_, err := FindAvailablePort(10, 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no available port in range 10-5")
}
