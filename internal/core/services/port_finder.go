package services

import (
	"fmt"
	"net"
)

// FindAvailablePort returns the first port in [startPort, endPort] that
// can be bound on all interfaces. The test listener is closed again, so
// another process may still take the port before the caller binds it.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := max(startPort, 1); port <= endPort && port <= 65535; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
