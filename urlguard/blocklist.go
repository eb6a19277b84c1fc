package urlguard

import (
	"net/netip"
	"strconv"
	"strings"
)

// Blocked reports whether an address falls in a range that must never be
// fetched server-side: loopback, RFC1918 private, link-local, the reserved
// 0.0.0.0/8 block, IPv6 unspecified/link-local/unique-local, and IPv4-mapped
// IPv6 addresses whose embedded IPv4 is itself blocked.
func Blocked(addr netip.Addr) bool {
	if !addr.IsValid() {
		return true
	}

	// ::ffff:a.b.c.d — judge the embedded IPv4.
	addr = addr.Unmap()

	switch {
	case addr.IsLoopback(): // 127.0.0.0/8, ::1
		return true
	case addr.IsUnspecified(): // 0.0.0.0, ::
		return true
	case addr.IsPrivate(): // 10/8, 172.16/12, 192.168/16, fc00::/7
		return true
	case addr.IsLinkLocalUnicast(): // 169.254/16, fe80::/10
		return true
	case addr.IsLinkLocalMulticast():
		return true
	}

	// 0.0.0.0/8 beyond the unspecified address itself.
	if addr.Is4() && addr.As4()[0] == 0 {
		return true
	}

	return false
}

// DecodeLiteral decodes host representations that bypass naive string
// matching: plain dotted IPv4/IPv6 literals, pure-decimal 32-bit forms
// ("2130706433" == 127.0.0.1) and 0x-prefixed hex forms ("0x7f000001").
// ok is false when the host is a name rather than an address literal.
func DecodeLiteral(host string) (netip.Addr, bool) {
	h := strings.ToLower(strings.TrimSpace(host))

	if addr, err := netip.ParseAddr(h); err == nil {
		return addr, true
	}

	var n uint64
	var err error
	switch {
	case strings.HasPrefix(h, "0x"):
		n, err = strconv.ParseUint(h[2:], 16, 32)
	case h != "" && allDigits(h):
		n, err = strconv.ParseUint(h, 10, 32)
	default:
		return netip.Addr{}, false
	}
	if err != nil {
		return netip.Addr{}, false
	}

	b := [4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	return netip.AddrFrom4(b), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
