package network

import (
	"context"
	"net"
	"time"
)

const dialTimeout = 15 * time.Second

func (f *ClientFactory) makeDialFunc(ipStack string) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialWithIPStack(ctx, network, addr, ipStack)
	}
}

func dialWithIPStack(ctx context.Context, network, addr, ipStack string) (net.Conn, error) {
	switch ipStack {
	case "ipv4":
		return dialWithPreference(ctx, addr, "tcp4", "tcp6")
	case "ipv6":
		return dialWithPreference(ctx, addr, "tcp6", "tcp4")
	default:
		d := &net.Dialer{Timeout: dialTimeout}
		return d.DialContext(ctx, network, addr)
	}
}

// dialWithPreference tries primary first and falls back to the other family.
// The primary error is returned when both fail.
func dialWithPreference(ctx context.Context, addr, primary, fallback string) (net.Conn, error) {
	d := &net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, primary, addr)
	if err == nil {
		return conn, nil
	}
	if conn, ferr := d.DialContext(ctx, fallback, addr); ferr == nil {
		return conn, nil
	}
	return nil, err
}

// ipStackDialer adapts dialWithIPStack to proxy.Dialer.
type ipStackDialer struct {
	ipStack string
}

func (d *ipStackDialer) Dial(network, addr string) (net.Conn, error) {
	return dialWithIPStack(context.Background(), network, addr, d.ipStack)
}

func (d *ipStackDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return dialWithIPStack(ctx, network, addr, d.ipStack)
}
