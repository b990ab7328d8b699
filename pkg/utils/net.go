package utils

import (
	"net"
	"strconv"
)

// IsValidPort reports whether s is a usable TCP/UDP port number.
func IsValidPort(s string) bool {
	port, err := strconv.Atoi(s)
	if err != nil {
		return false
	}

	return port > 0 && port <= 65535
}

// IsPortAvailable reports whether a TCP port can be bound locally.
func IsPortAvailable(port int) bool {
	l, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return false
	}

	_ = l.Close()

	return true
}
