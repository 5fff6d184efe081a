package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelError,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Remove the directory from the source's filename.
			if a.Key == slog.SourceKey {
				source := a.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return a
		},
	}))
	slog.SetDefault(logger)
}

type fakeQuerier struct {
	routes    []netlink.RouteEntry
	neighbors []netlink.NeighborEntry
	links     map[string]netlink.LinkInfo
	err       error

	lastRoutes    *netlink.RouteCriteria
	lastNeighbors *netlink.NeighborCriteria
}

func (q *fakeQuerier) Route(dest cidr.CIDR) (*netlink.RouteEntry, error) {
	if q.err != nil {
		return nil, q.err
	}
	// Longest prefix wins.
	var best *netlink.RouteEntry
	for i, r := range q.routes {
		if r.Dest.Contains(dest.Host()) && (best == nil || r.Dest.Prefix() > best.Dest.Prefix()) {
			best = &q.routes[i]
		}
	}
	return best, nil
}

func (q *fakeQuerier) Routes(c *netlink.RouteCriteria) ([]netlink.RouteEntry, error) {
	q.lastRoutes = c
	if q.err != nil {
		return nil, q.err
	}
	out := []netlink.RouteEntry{}
	for _, r := range q.routes {
		if c.Match(&r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (q *fakeQuerier) Neighbors(c *netlink.NeighborCriteria) ([]netlink.NeighborEntry, error) {
	q.lastNeighbors = c
	if q.err != nil {
		return nil, q.err
	}
	out := []netlink.NeighborEntry{}
	for _, n := range q.neighbors {
		if c.Match(&n) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (q *fakeQuerier) Link(name string) (netlink.LinkInfo, error) {
	if q.err != nil {
		return netlink.LinkInfo{}, q.err
	}
	return q.links[name], nil
}

type fakeStats map[string]procnet.LinkStats

func (s fakeStats) Stats(name string) (procnet.LinkStats, bool, error) {
	st, ok := s[name]
	return st, ok, nil
}

func newQuerier() *fakeQuerier {
	gw := cidr.MustParse("192.168.1.1")
	src := cidr.MustParse("192.168.1.10")
	return &fakeQuerier{
		routes: []netlink.RouteEntry{
			{Type: types.RTN_UNICAST, Family: types.IPv4, Dest: cidr.MustParse("0.0.0.0/0"), Gateway: &gw,
				Device: "eth0", Table: types.RT_TABLE_MAIN, Protocol: types.RTPROT_DHCP, Metric: netlink.Ptr[uint32](100)},
			{Type: types.RTN_UNICAST, Family: types.IPv4, Dest: cidr.MustParse("192.168.1.0/24"), Src: &src,
				Device: "eth0", Table: types.RT_TABLE_MAIN, Protocol: types.RTPROT_KERNEL, Scope: types.RT_SCOPE_LINK},
			{Type: types.RTN_LOCAL, Family: types.IPv4, Dest: cidr.MustParse("192.168.1.10"), Src: &src,
				Device: "eth0", Table: types.RT_TABLE_LOCAL, Protocol: types.RTPROT_KERNEL, Scope: types.RT_SCOPE_HOST},
			{Type: types.RTN_UNICAST, Family: types.IPv6, Dest: cidr.MustParse("::/0"), Gateway: netlink.Ptr(cidr.MustParse("fe80::1")),
				Device: "eth0", Table: types.RT_TABLE_MAIN, Protocol: types.RTPROT_RA, Metric: netlink.Ptr[uint32](1024), Expires: netlink.Ptr[uint32](1800)},
		},
		neighbors: []netlink.NeighborEntry{
			{Family: types.IPv4, Device: "eth0", Address: cidr.MustParse("192.168.1.1"), MAC: "00:11:22:33:44:55", Reachable: true},
			{Family: types.IPv4, Device: "eth0", Address: cidr.MustParse("192.168.1.99"), Failed: true},
			{Family: types.IPv6, Device: "eth0", Address: cidr.MustParse("fe80::1"), MAC: "00:11:22:33:44:66", Router: true, Stale: true},
		},
		links: map[string]netlink.LinkInfo{
			"eth0": {Up: true, Type: 1, Name: "eth0", Master: "br0", MTU: 1500, TxQueueLen: 1000, HardwareAddr: "52:54:00:12:34:56"},
		},
	}
}

type response struct {
	code int
	body []byte
}

func get(t *testing.T, s *Server, target string) response {
	t.Helper()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return response{rec.Code, rec.Body.Bytes()}
}

func compileSchemas(t *testing.T) map[string]*jsonschema.Schema {
	t.Helper()

	c := jsonschema.NewCompiler()
	schemas := map[string]*jsonschema.Schema{}
	for _, name := range []string{"route", "routes", "neighbors", "link", "cidr", "error"} {
		sch, err := c.Compile("testdata/" + name + ".schema.json")
		if err != nil {
			t.Fatalf("error compiling the %s schema: %v", name, err)
		}
		schemas[name] = sch
	}
	return schemas
}

func TestResponses(t *testing.T) {
	schemas := compileSchemas(t)
	s := New(&Config{}, newQuerier(), fakeStats{"eth0": {RxBytes: 1, TxBytes: 2}})

	tests := []struct {
		target string
		code   int
		schema string
	}{
		{"/route/10.1.2.3", http.StatusOK, "route"},
		{"/route/2001:db8::1", http.StatusOK, "route"},
		{"/route/not-an-ip", http.StatusBadRequest, "error"},
		{"/routes", http.StatusOK, "routes"},
		{"/routes?family=6", http.StatusOK, "routes"},
		{"/routes?table=local&type=local", http.StatusOK, "routes"},
		{"/routes?dest_exact=0.0.0.0/0", http.StatusOK, "routes"},
		{"/routes?family=ipx", http.StatusBadRequest, "error"},
		{"/routes?gw=300.1.1.1", http.StatusBadRequest, "error"},
		{"/routes?proto=carrier-pigeon", http.StatusBadRequest, "error"},
		{"/routes?table=70000", http.StatusBadRequest, "error"},
		{"/neighbors", http.StatusOK, "neighbors"},
		{"/neighbors?router=true", http.StatusOK, "neighbors"},
		{"/neighbors?router=maybe", http.StatusBadRequest, "error"},
		{"/link/eth0", http.StatusOK, "link"},
		{"/link/eth0?stats=true", http.StatusOK, "link"},
		{"/link/eth0?stats=often", http.StatusBadRequest, "error"},
		{"/link/eth9", http.StatusNotFound, "error"},
		{"/cidr/10.1.2.3?mask=255.255.0.0", http.StatusOK, "cidr"},
		{"/cidr/2001:db8::1?mask=64", http.StatusOK, "cidr"},
		{"/cidr/::ffff:192.0.2.1", http.StatusOK, "cidr"},
		{"/cidr/10.1.2.3?mask=255.0.255.0", http.StatusBadRequest, "error"},
	}

	for _, test := range tests {
		resp := get(t, s, test.target)
		if resp.code != test.code {
			t.Errorf("%q: got status %d, want %d: %s", test.target, resp.code, test.code, resp.body)
			continue
		}

		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(resp.body))
		if err != nil {
			t.Errorf("%q: error unmarshaling the response: %v", test.target, err)
			continue
		}
		if err := schemas[test.schema].Validate(inst); err != nil {
			t.Errorf("%q: response doesn't match the %s schema: %v", test.target, test.schema, err)
		}
	}
}

func TestRouteLookup(t *testing.T) {
	s := New(&Config{}, newQuerier(), nil)

	var r struct {
		Dest    string `json:"dest"`
		Gateway string `json:"gateway"`
		Src     string `json:"src"`
	}

	resp := get(t, s, "/route/192.168.1.77")
	if err := json.Unmarshal(resp.body, &r); err != nil {
		t.Fatalf("error unmarshaling %s: %v", resp.body, err)
	}
	if r.Dest != "192.168.1.0/24" || r.Src != "192.168.1.10" || r.Gateway != "" {
		t.Errorf("got %+v, want the connected route", r)
	}

	q := newQuerier()
	q.routes = nil
	if resp := get(t, New(&Config{}, q, nil), "/route/8.8.8.8"); resp.code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", resp.code, http.StatusNotFound)
	}
}

func TestRoutesCriteria(t *testing.T) {
	q := newQuerier()
	s := New(&Config{}, q, nil)

	resp := get(t, s, "/routes?family=inet&oif=eth0&table=main&proto=16&gw=192.168.0.0/16&dest_exact=0.0.0.0/0")
	if resp.code != http.StatusOK {
		t.Fatalf("got status %d: %s", resp.code, resp.body)
	}

	want := netlink.RouteCriteria{
		Family:    types.IPv4,
		OIF:       "eth0",
		Table:     netlink.Ptr(types.RT_TABLE_MAIN),
		Protocol:  netlink.Ptr(types.RTPROT_DHCP),
		Gateway:   netlink.Ptr(cidr.MustParse("192.168.0.0/16")),
		DestExact: netlink.Ptr(cidr.MustParse("0.0.0.0/0")),
	}
	cmpCIDR := cmp.Comparer(func(a, b cidr.CIDR) bool { return a.Identical(b) })
	if diff := cmp.Diff(&want, q.lastRoutes, cmpCIDR); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}

	var routes []map[string]any
	if err := json.Unmarshal(resp.body, &routes); err != nil {
		t.Fatalf("error unmarshaling %s: %v", resp.body, err)
	}
	if len(routes) != 1 || routes[0]["dest"] != "0.0.0.0/0" {
		t.Errorf("got %v, want the default route only", routes)
	}
}

func TestNeighborsCriteria(t *testing.T) {
	q := newQuerier()
	s := New(&Config{}, q, nil)

	resp := get(t, s, "/neighbors?dev=eth0&mac=00-11-22-33-44-55&dest=192.168.0.0/16&proxy=false")
	if resp.code != http.StatusOK {
		t.Fatalf("got status %d: %s", resp.code, resp.body)
	}

	want := netlink.NeighborCriteria{
		Device: "eth0",
		MAC:    "00-11-22-33-44-55",
		Dest:   netlink.Ptr(cidr.MustParse("192.168.0.0/16")),
		Proxy:  netlink.Ptr(false),
	}
	cmpCIDR := cmp.Comparer(func(a, b cidr.CIDR) bool { return a.Identical(b) })
	if diff := cmp.Diff(&want, q.lastNeighbors, cmpCIDR); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}

	var neighbors []map[string]any
	if err := json.Unmarshal(resp.body, &neighbors); err != nil {
		t.Fatalf("error unmarshaling %s: %v", resp.body, err)
	}
	if len(neighbors) != 1 || neighbors[0]["dest"] != "192.168.1.1" {
		t.Errorf("got %v, want 192.168.1.1 only", neighbors)
	}
}

func TestLinkStats(t *testing.T) {
	s := New(&Config{}, newQuerier(), fakeStats{"eth0": {RxBytes: 10, TxBytes: 20}})

	var l linkResponse
	resp := get(t, s, "/link/eth0?stats=1")
	if err := json.Unmarshal(resp.body, &l); err != nil {
		t.Fatalf("error unmarshaling %s: %v", resp.body, err)
	}
	if l.Stats == nil || l.Stats.RxBytes != 10 || l.Stats.TxBytes != 20 {
		t.Errorf("got stats %+v, want rx=10 tx=20", l.Stats)
	}
	if l.Master != "br0" {
		t.Errorf("got master %q, want %q", l.Master, "br0")
	}

	// No stats unless asked for.
	l = linkResponse{}
	resp = get(t, s, "/link/eth0")
	if err := json.Unmarshal(resp.body, &l); err != nil {
		t.Fatalf("error unmarshaling %s: %v", resp.body, err)
	}
	if l.Stats != nil {
		t.Errorf("got stats %+v, want none", l.Stats)
	}
}

func TestCidr(t *testing.T) {
	s := New(&Config{}, newQuerier(), nil)

	tests := []struct {
		target string
		want   map[string]any
	}{
		{"/cidr/192.168.1.77?mask=24", map[string]any{
			"cidr": "192.168.1.77/24", "family": "ipv4", "prefix": 24.0,
			"network": "192.168.1.0/24", "mask": "255.255.255.0/24", "broadcast": "192.168.1.255/24",
			"minHost": "192.168.1.1/24", "maxHost": "192.168.1.254/24",
			"rfc1918": true, "linkLocal": false,
		}},
		{"/cidr/fe80::1?mask=64", map[string]any{
			"cidr": "fe80::1/64", "family": "ipv6", "prefix": 64.0,
			"network": "fe80::/64", "mask": "ffff:ffff:ffff:ffff::/64",
			"minHost": "fe80::1/64", "maxHost": "fe80::ffff:ffff:ffff:ffff/64",
			"rfc1918": false, "linkLocal": true,
		}},
		{"/cidr/::ffff:10.0.0.1", map[string]any{
			"cidr": "::ffff:10.0.0.1", "family": "ipv6", "prefix": 128.0,
			"network": "::ffff:10.0.0.1", "mask": "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff",
			"minHost": "::ffff:10.0.0.1", "maxHost": "::ffff:10.0.0.1", "mapped4": "10.0.0.1",
			"rfc1918": false, "linkLocal": false,
		}},
	}

	for _, test := range tests {
		resp := get(t, s, test.target)

		got := map[string]any{}
		if err := json.Unmarshal(resp.body, &got); err != nil {
			t.Errorf("%q: error unmarshaling %s: %v", test.target, resp.body, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", test.target, diff)
		}
	}
}

func TestQueryFailure(t *testing.T) {
	q := newQuerier()
	q.err = &netlink.TransportError{Op: "route dump", Errno: syscall.EPERM, Err: syscall.EPERM}
	s := New(&Config{}, q, nil)

	for _, target := range []string{"/routes", "/route/1.1.1.1", "/neighbors", "/link/eth0"} {
		resp := get(t, s, target)
		if resp.code != http.StatusInternalServerError {
			t.Errorf("%q: got status %d, want %d", target, resp.code, http.StatusInternalServerError)
		}
	}

	q.err = errors.New("boom")
	if resp := get(t, s, "/routes"); resp.code != http.StatusInternalServerError {
		t.Errorf("got status %d, want %d", resp.code, http.StatusInternalServerError)
	}
}

func TestRoot(t *testing.T) {
	s := New(nil, newQuerier(), nil)
	s.Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("luci_scrape_errors_total 0\n"))
	}))

	var root struct {
		Routes []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		} `json:"routes"`
	}
	resp := get(t, s, "/")
	if err := json.Unmarshal(resp.body, &root); err != nil {
		t.Fatalf("error unmarshaling %s: %v", resp.body, err)
	}

	paths := map[string]bool{}
	for _, r := range root.Routes {
		paths[r.Path] = true
	}
	for _, p := range []string{"/", "/route/:dest", "/routes", "/neighbors", "/link/:name", "/cidr/:addr", "/metrics"} {
		if !paths[p] {
			t.Errorf("missing %q in %v", p, root.Routes)
		}
	}

	if resp := get(t, s, "/metrics"); resp.code != http.StatusOK || string(resp.body) != "luci_scrape_errors_total 0\n" {
		t.Errorf("got (%d, %q) from /metrics", resp.code, resp.body)
	}
}
