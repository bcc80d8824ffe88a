package chalito

// HasRole reports whether the cached profile carries exactly the given role.
// It is a pure query: no network, no state changes.
func (c *Client) HasRole(role Role) bool {
	p, ok := c.CurrentProfile()
	return ok && Role(p.Rol) == role
}

// HasMinimumRole reports whether the cached profile's role meets or exceeds
// the given role in the Admin > Gerente > Cajero ordering. Cocina sits outside
// the ordering on both sides: a Cocina profile only ever satisfies an exact
// RoleCocina check, and RoleCocina as the minimum is an exact-match check.
func (c *Client) HasMinimumRole(role Role) bool {
	p, ok := c.CurrentProfile()
	if !ok {
		return false
	}
	have := Role(p.Rol)
	if role == RoleCocina || have == RoleCocina {
		return have == role
	}
	haveRank, ok := roleRank[have]
	if !ok {
		return false
	}
	wantRank, ok := roleRank[role]
	if !ok {
		return false
	}
	return haveRank >= wantRank
}

// IsAdmin reports whether the active session belongs to an administrator.
func (c *Client) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// IsGerente reports whether the active session has at least manager access.
func (c *Client) IsGerente() bool {
	return c.HasMinimumRole(RoleGerente)
}

// IsCajero reports whether the active session has at least cashier access.
func (c *Client) IsCajero() bool {
	return c.HasMinimumRole(RoleCajero)
}

// IsCocina reports whether the active session belongs to kitchen staff.
func (c *Client) IsCocina() bool {
	return c.HasRole(RoleCocina)
}
