//go:build linux

package netlink

import (
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// Not every route, neighbour or link carries a gateway or a master, so the
// only way to know what we got is to keep track of the attribute type. These
// tables give them their kernel names when tracing.
var (
	msgTypeName = map[netlink.HeaderType]string{
		unix.RTM_NEWLINK:  "RTM_NEWLINK",
		unix.RTM_GETLINK:  "RTM_GETLINK",
		unix.RTM_NEWROUTE: "RTM_NEWROUTE",
		unix.RTM_GETROUTE: "RTM_GETROUTE",
		unix.RTM_NEWNEIGH: "RTM_NEWNEIGH",
		unix.RTM_GETNEIGH: "RTM_GETNEIGH",
	}

	rtaName = map[uint16]string{
		unix.RTA_UNSPEC:    "RTA_UNSPEC",
		unix.RTA_DST:       "RTA_DST",
		unix.RTA_SRC:       "RTA_SRC",
		unix.RTA_IIF:       "RTA_IIF",
		unix.RTA_OIF:       "RTA_OIF",
		unix.RTA_GATEWAY:   "RTA_GATEWAY",
		unix.RTA_PRIORITY:  "RTA_PRIORITY",
		unix.RTA_PREFSRC:   "RTA_PREFSRC",
		unix.RTA_METRICS:   "RTA_METRICS",
		unix.RTA_MULTIPATH: "RTA_MULTIPATH",
		unix.RTA_FLOW:      "RTA_FLOW",
		unix.RTA_CACHEINFO: "RTA_CACHEINFO",
		unix.RTA_TABLE:     "RTA_TABLE",
		unix.RTA_MARK:      "RTA_MARK",
		unix.RTA_MFC_STATS: "RTA_MFC_STATS",
		unix.RTA_VIA:       "RTA_VIA",
		unix.RTA_PREF:      "RTA_PREF",
		unix.RTA_EXPIRES:   "RTA_EXPIRES",
		unix.RTA_UID:       "RTA_UID",
	}

	ndaName = map[uint16]string{
		unix.NDA_UNSPEC:    "NDA_UNSPEC",
		unix.NDA_DST:       "NDA_DST",
		unix.NDA_LLADDR:    "NDA_LLADDR",
		unix.NDA_CACHEINFO: "NDA_CACHEINFO",
		unix.NDA_PROBES:    "NDA_PROBES",
		unix.NDA_VLAN:      "NDA_VLAN",
		unix.NDA_PORT:      "NDA_PORT",
		unix.NDA_VNI:       "NDA_VNI",
		unix.NDA_IFINDEX:   "NDA_IFINDEX",
		unix.NDA_MASTER:    "NDA_MASTER",
	}

	iflaName = map[uint16]string{
		unix.IFLA_UNSPEC:    "IFLA_UNSPEC",
		unix.IFLA_ADDRESS:   "IFLA_ADDRESS",
		unix.IFLA_BROADCAST: "IFLA_BROADCAST",
		unix.IFLA_IFNAME:    "IFLA_IFNAME",
		unix.IFLA_MTU:       "IFLA_MTU",
		unix.IFLA_LINK:      "IFLA_LINK",
		unix.IFLA_QDISC:     "IFLA_QDISC",
		unix.IFLA_STATS:     "IFLA_STATS",
		unix.IFLA_MASTER:    "IFLA_MASTER",
		unix.IFLA_OPERSTATE: "IFLA_OPERSTATE",
		unix.IFLA_TXQLEN:    "IFLA_TXQLEN",
		unix.IFLA_LINKINFO:  "IFLA_LINKINFO",
		unix.IFLA_STATS64:   "IFLA_STATS64",
	}
)
