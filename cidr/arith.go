package cidr

// add sums v onto the address, clamping to the family's highest address.
// The boolean is false when clamping happened.
func (c CIDR) add(v uint128) (CIDR, bool) {
	top := allOnes(c.width())
	if v.cmp(top) > 0 {
		return c.withAddr(top), false
	}
	r, carry := c.addr.add(v)
	if carry || r.cmp(top) > 0 {
		return c.withAddr(top), false
	}
	return c.withAddr(r), true
}

// sub subtracts v from the address, clamping to the all-zero address.
func (c CIDR) sub(v uint128) (CIDR, bool) {
	r, borrow := c.addr.sub(v)
	if borrow {
		return c.withAddr(zero128), false
	}
	return c.withAddr(r), true
}

// Add returns c moved n addresses up, clamped to the family's last address.
func (c CIDR) Add(n uint64) CIDR {
	r, _ := c.add(uint128{lo: n})
	return r
}

// Sub returns c moved n addresses down, clamped to the all-zero address.
func (c CIDR) Sub(n uint64) CIDR {
	r, _ := c.sub(uint128{lo: n})
	return r
}

// AddCIDR adds the numeric value of o's address.
func (c CIDR) AddCIDR(o CIDR) CIDR {
	r, _ := c.add(o.addr)
	return r
}

// SubCIDR subtracts the numeric value of o's address.
func (c CIDR) SubCIDR(o CIDR) CIDR {
	r, _ := c.sub(o.addr)
	return r
}

// AddInPlace is Add overwriting the receiver. It returns false when the
// result had to be clamped; the clamped value is stored regardless.
func (c *CIDR) AddInPlace(n uint64) bool {
	r, ok := c.add(uint128{lo: n})
	*c = r
	return ok
}

func (c *CIDR) SubInPlace(n uint64) bool {
	r, ok := c.sub(uint128{lo: n})
	*c = r
	return ok
}

func (c *CIDR) AddCIDRInPlace(o CIDR) bool {
	r, ok := c.add(o.addr)
	*c = r
	return ok
}

func (c *CIDR) SubCIDRInPlace(o CIDR) bool {
	r, ok := c.sub(o.addr)
	*c = r
	return ok
}
