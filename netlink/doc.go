// Package netlink queries the kernel's routing tables, neighbour caches and
// links over rtnetlink(7). It never modifies kernel state.
//
// Every query opens its own NETLINK_ROUTE socket and closes it before
// returning. Dumps are NLM_F_DUMP requests whose multipart replies are
// reassembled by github.com/mdlayher/netlink; kernel error replies surface
// as *TransportError carrying the errno. Filtering happens in userspace:
// the kernel only narrows dumps down by address family. Be sure to check
// rtnetlink(7) and netlink(7) for the message layouts.
//
// Interface indices found in routes and neighbours are resolved to names
// over the same socket with a single RTM_GETLINK dump. The entry point for
// those dumps is rtnl_dump_ifinfo [0]; route dumps land on inet_dump_fib [1]
// and inet6_dump_fib [2] whereas neighbour dumps go through
// neigh_dump_info [3].
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/net/core/rtnetlink.c#L2349
//
// 1: https://elixir.bootlin.com/linux/v6.12.4/source/net/ipv4/fib_frontend.c#L992
//
// 2: https://elixir.bootlin.com/linux/v6.12.4/source/net/ipv6/ip6_fib.c#L627
//
// 3: https://elixir.bootlin.com/linux/v6.12.4/source/net/core/neighbour.c#L2845
package netlink
