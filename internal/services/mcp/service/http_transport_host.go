package service

import (
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
)

var (
	errForeignHost   = errors.New("host not allowed")
	errForeignOrigin = errors.New("origin not allowed")
)

// hostAllowlist admits loopback hosts plus the configured names, which are
// stored lowercased without ports.
type hostAllowlist map[string]struct{}

func newHostAllowlist(hosts []string) hostAllowlist {
	allowed := make(hostAllowlist, len(hosts))
	for _, entry := range hosts {
		if host, ok := hostname(entry); ok {
			allowed[host] = struct{}{}
		}
	}
	return allowed
}

// allows reports whether a Host header value, port optional, is admitted.
// Any loopback IP literal counts, not only 127.0.0.1 and ::1.
func (a hostAllowlist) allows(hostport string) bool {
	host, ok := hostname(hostport)
	if !ok {
		return false
	}
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	_, ok = a[host]
	return ok
}

// check validates the Host header and, when a browser sent one, the Origin.
func (a hostAllowlist) check(r *http.Request) error {
	if !a.allows(r.Host) {
		return errForeignHost
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" || !a.allows(parsed.Host) {
		return errForeignOrigin
	}
	return nil
}

// hostname lowercases hostport and strips its port and IPv6 brackets.
func hostname(hostport string) (string, bool) {
	hostport = strings.ToLower(strings.TrimSpace(hostport))
	if hostport == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host, host != ""
	}
	if strings.HasPrefix(hostport, "[") {
		if !strings.HasSuffix(hostport, "]") {
			return "", false
		}
		return hostport[1 : len(hostport)-1], true
	}
	if strings.ContainsAny(hostport, "[]") {
		return "", false
	}
	return hostport, true
}

// handleHealth answers GET /mcp/health. Host checks run in requireLocal.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok\n")); err != nil {
		log.Printf("write health response: %v", err)
	}
}
