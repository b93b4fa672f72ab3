package service

// RouteResolver maps a ship identifier to the route identifier whose catalog
// data describes that ship. The ledger assumes the two share one namespace
// unless told otherwise.
type RouteResolver interface {
	RouteFor(shipID string) string
}

// IdentityRouteResolver treats the ship id as the route id
type IdentityRouteResolver struct{}

func (IdentityRouteResolver) RouteFor(shipID string) string {
	return shipID
}

// MappedRouteResolver resolves ships through an explicit table, falling back
// to the identity mapping for ships it does not list.
type MappedRouteResolver struct {
	routes map[string]string
}

// NewMappedRouteResolver copies the ship to route table
func NewMappedRouteResolver(shipRoutes map[string]string) *MappedRouteResolver {
	routes := make(map[string]string, len(shipRoutes))
	for ship, route := range shipRoutes {
		routes[ship] = route
	}
	return &MappedRouteResolver{routes: routes}
}

func (r *MappedRouteResolver) RouteFor(shipID string) string {
	if route, ok := r.routes[shipID]; ok {
		return route
	}
	return shipID
}

// NewRouteResolver returns the identity resolver when there are no overrides
func NewRouteResolver(shipRoutes map[string]string) RouteResolver {
	if len(shipRoutes) == 0 {
		return IdentityRouteResolver{}
	}
	return NewMappedRouteResolver(shipRoutes)
}
