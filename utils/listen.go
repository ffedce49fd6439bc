package utils

import (
	"net"
	"strconv"
)

// IsAddressAvailable reports whether a server could listen on addr, given as
// "host:port", ":port" or a bare port. An empty host or localhost means the
// IPv4 loopback.
func IsAddressAvailable(addr string) bool {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		host, portStr = "", addr
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		Verbose("invalid listen address %q", addr)
		return false
	}

	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		Verbose("not an IPv4 address: %s", host)
		return false
	}

	listener, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: ip, Port: port})
	if err != nil {
		Verbose("address %s is not available: %v", addr, err)
		return false
	}

	_ = listener.Close()
	return true
}
