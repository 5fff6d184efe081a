package metrics

import (
	"context"
	"log/slog"

	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
	"github.com/prometheus/client_golang/prometheus"
)

// Querier is the slice of the netlink client the collector needs.
type Querier interface {
	Routes(c *netlink.RouteCriteria) ([]netlink.RouteEntry, error)
	Neighbors(c *netlink.NeighborCriteria) ([]netlink.NeighborEntry, error)
	Links() ([]netlink.LinkInfo, error)
}

// StatsReader provides per-device counters.
type StatsReader interface {
	All() (map[string]procnet.LinkStats, error)
}

// Metric labels (note these are **always** strings):
//
//	family: ipv4 or ipv6
//	table: routing table name or number
//	type: route type (unicast, local...)
//	proto: routing protocol that installed the route
//	device: interface name
//	state: NUD state(s) joined with '|'
var (
	routeLabels    = []string{"family", "table", "type", "proto"}
	neighborLabels = []string{"family", "device", "state"}
	deviceLabels   = []string{"device"}
)

// collector queries the kernel on every scrape: nothing is cached between
// two of them.
type collector struct {
	q        Querier
	stats    StatsReader
	families []types.Family
	logger   *slog.Logger

	routes    *prometheus.Desc
	neighbors *prometheus.Desc
	linkUp    *prometheus.Desc
	linkMTU   *prometheus.Desc
	rxBytes   *prometheus.Desc
	txBytes   *prometheus.Desc

	scrapeErrors prometheus.Counter
}

func newCollector(q Querier, stats StatsReader, families []types.Family, logger *slog.Logger) *collector {
	return &collector{
		q:        q,
		stats:    stats,
		families: families,
		logger:   logger,

		routes: prometheus.NewDesc("luci_routes",
			"Number of routes", routeLabels, nil),
		neighbors: prometheus.NewDesc("luci_neighbors",
			"Number of neighbour cache entries", neighborLabels, nil),
		linkUp: prometheus.NewDesc("luci_link_up",
			"Whether the device is administratively up", deviceLabels, nil),
		linkMTU: prometheus.NewDesc("luci_link_mtu",
			"Device MTU [B]", deviceLabels, nil),
		rxBytes: prometheus.NewDesc("luci_link_rx_bytes",
			"Bytes received by the device", deviceLabels, nil),
		txBytes: prometheus.NewDesc("luci_link_tx_bytes",
			"Bytes transmitted by the device", deviceLabels, nil),

		scrapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "luci_scrape_errors_total",
			Help: "Queries that failed while scraping",
		}),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.routes
	ch <- c.neighbors
	ch <- c.linkUp
	ch <- c.linkMTU
	ch <- c.rxBytes
	ch <- c.txBytes
	c.scrapeErrors.Describe(ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	c.logger.Log(context.Background(), types.LevelTrace, "collecting")

	c.collectRoutes(ch)
	c.collectNeighbors(ch)
	c.collectLinks(ch)

	c.scrapeErrors.Collect(ch)
}

func (c *collector) fail(what string, err error) {
	c.logger.Warn("scrape query failed", "what", what, "err", err)
	c.scrapeErrors.Inc()
}

type routeKey struct {
	family, table, rtype, proto string
}

func (c *collector) collectRoutes(ch chan<- prometheus.Metric) {
	counts := map[routeKey]int{}
	for _, f := range c.families {
		routes, err := c.q.Routes(&netlink.RouteCriteria{Family: f})
		if err != nil {
			c.fail("routes", err)
			continue
		}
		for _, r := range routes {
			counts[routeKey{r.Family.String(), types.TableName(r.Table), r.Type.String(), r.Protocol.String()}]++
		}
	}

	for k, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.routes, prometheus.GaugeValue, float64(n),
			k.family, k.table, k.rtype, k.proto)
	}
}

type neighborKey struct {
	family, device, state string
}

func (c *collector) collectNeighbors(ch chan<- prometheus.Metric) {
	counts := map[neighborKey]int{}
	for _, f := range c.families {
		neighbors, err := c.q.Neighbors(&netlink.NeighborCriteria{Family: f})
		if err != nil {
			c.fail("neighbors", err)
			continue
		}
		for _, n := range neighbors {
			counts[neighborKey{n.Family.String(), n.Device, n.State().String()}]++
		}
	}

	for k, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.neighbors, prometheus.GaugeValue, float64(n),
			k.family, k.device, k.state)
	}
}

func (c *collector) collectLinks(ch chan<- prometheus.Metric) {
	links, err := c.q.Links()
	if err != nil {
		c.fail("links", err)
	}

	for _, l := range links {
		up := 0.0
		if l.Up {
			up = 1
		}
		ch <- prometheus.MustNewConstMetric(c.linkUp, prometheus.GaugeValue, up, l.Name)
		ch <- prometheus.MustNewConstMetric(c.linkMTU, prometheus.GaugeValue, float64(l.MTU), l.Name)
	}

	if c.stats == nil {
		return
	}

	stats, err := c.stats.All()
	if err != nil {
		c.fail("stats", err)
		return
	}
	for name, s := range stats {
		ch <- prometheus.MustNewConstMetric(c.rxBytes, prometheus.CounterValue, float64(s.RxBytes), name)
		ch <- prometheus.MustNewConstMetric(c.txBytes, prometheus.CounterValue, float64(s.TxBytes), name)
	}

	c.logger.Log(context.Background(), types.LevelTrace, "collected links", "n", len(links))
}
