package nn

// Role marks how a network uses one of its modules. Roles are flags: a
// module can be input and output at the same time.
type Role int

// Module roles.
const (
	RoleHidden Role = 0
	RoleInput  Role = 1
	RoleOutput Role = 2
)

// Network is a module made of an arbitrary graph of modules and
// connections.
//
// The network input is split over the input modules and the network output
// is the concatenation of the output modules, both in the order the
// modules were added. Connections marked recurrent may form cycles; all
// other connections must form a DAG.
//
// Example:
//
//	net := nn.NewNetwork()
//	in, out := nn.NewLinear(2), nn.NewLinear(2)
//	net.AddModule(in, nn.RoleInput)
//	net.AddModule(out, nn.RoleOutput)
//	con, _ := nn.NewFullConnection(in, out)
//	net.AddConnection(con)
//	y := net.Activate([]float64{2, 4})
//
// The schedule is computed lazily on the first Activate after the graph
// changed, or explicitly with Sort.
type Network struct {
	baseNetwork

	modules     []Module
	roles       []Role
	connections []Connection

	order []Component
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	n := &Network{}
	n.init(n, 0, 0)
	n.sort = n.Sort
	n.dirty = true
	return n
}

// AddModule adds m to the network with the given role. Adding a module
// twice only updates its role.
func (n *Network) AddModule(m Module, role Role) {
	n.dirty = true
	for i, mod := range n.modules {
		if mod == m {
			n.roles[i] = role
			return
		}
	}
	n.modules = append(n.modules, m)
	n.roles = append(n.roles, role)
}

// AddConnection adds c to the network. Both endpoints have to be added as
// modules before the network is sorted.
func (n *Network) AddConnection(c Connection) {
	n.dirty = true
	n.connections = append(n.connections, c)
}

// Len returns the number of modules.
func (n *Network) Len() int {
	return len(n.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (n *Network) Module(index int) Module {
	if index < 0 || index >= len(n.modules) {
		panic("network: module index out of bounds")
	}
	return n.modules[index]
}

// Modules returns the modules with the given role flags set, in insertion
// order. RoleHidden returns all modules.
func (n *Network) Modules(role Role) []Module {
	var mods []Module
	for i, m := range n.modules {
		if n.roles[i]&role == role {
			mods = append(mods, m)
		}
	}
	return mods
}

// Connections returns the connections in insertion order.
func (n *Network) Connections() []Connection {
	return append([]Connection(nil), n.connections...)
}

// Order returns the execution order of the last sort, nil while the
// network is dirty.
func (n *Network) Order() []Component {
	if n.dirty {
		return nil
	}
	return append([]Component(nil), n.order...)
}

// Parameters returns the parameter stores of all parametrized components,
// modules first, both in insertion order. The stores of a nested network
// are listed in place of the network.
func (n *Network) Parameters() []*Parameters {
	var params []*Parameters
	collect := func(c any) {
		if p, ok := c.(Parametrized); ok && p.Parameters() != nil {
			params = append(params, p.Parameters())
		}
	}
	for _, m := range n.modules {
		if sub, ok := m.(*Network); ok {
			params = append(params, sub.Parameters()...)
			continue
		}
		collect(m)
	}
	for _, c := range n.connections {
		collect(c)
	}
	return params
}

// ClearDerivatives zeroes the derivatives of every parameter store.
func (n *Network) ClearDerivatives() {
	for _, p := range n.Parameters() {
		p.ClearDerivatives()
	}
}

// Sort validates the graph and computes the execution order: all
// recurrent connections first, then every module in topological order,
// each followed by its outgoing non-recurrent connections.
//
// Sort resizes the network buffers and clears all state.
func (n *Network) Sort() error {
	index := make(map[Module]int, len(n.modules))
	for i, m := range n.modules {
		index[m] = i
	}

	var recurrent []Connection
	outgoing := make([][]Connection, len(n.modules))
	incoming := make([]int, len(n.modules))
	for _, c := range n.connections {
		src, ok := index[c.Incoming()]
		if !ok {
			return configErrorf("sort", ErrUnknownModule, "incoming module of %v", c)
		}
		dst, ok := index[c.Outgoing()]
		if !ok {
			return configErrorf("sort", ErrUnknownModule, "outgoing module of %v", c)
		}
		if c.Recurrent() > 0 {
			if !c.Sequential() {
				return configErrorf("sort", ErrRecurrentNotSequential, "offset %d in mode %v", c.Recurrent(), c.Mode())
			}
			recurrent = append(recurrent, c)
			continue
		}
		outgoing[src] = append(outgoing[src], c)
		incoming[dst]++
	}

	// Kahn's algorithm over the non-recurrent edges.
	queue := make([]int, 0, len(n.modules))
	for i, cnt := range incoming {
		if cnt == 0 {
			queue = append(queue, i)
		}
	}
	sorted := make([]int, 0, len(n.modules))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		sorted = append(sorted, i)
		for _, c := range outgoing[i] {
			dst := index[c.Outgoing()]
			incoming[dst]--
			if incoming[dst] == 0 {
				queue = append(queue, dst)
			}
		}
	}
	if len(sorted) != len(n.modules) {
		return configErrorf("sort", ErrCycle, "%d of %d modules are on a cycle",
			len(n.modules)-len(sorted), len(n.modules))
	}

	order := make([]Component, 0, len(n.modules)+len(n.connections))
	for _, c := range recurrent {
		order = append(order, c)
	}
	for _, i := range sorted {
		order = append(order, n.modules[i])
		for _, c := range outgoing[i] {
			order = append(order, c)
		}
	}
	n.order = order

	insize, outsize := 0, 0
	for _, m := range n.Modules(RoleInput) {
		insize += m.InSize()
	}
	for _, m := range n.Modules(RoleOutput) {
		outsize += m.OutSize()
	}
	n.initBuffers(insize, outsize)
	n.dirty = false
	n.Clear()
	return nil
}

func (n *Network) forward() {
	t := n.timestep

	in := n.input.Row(t)
	for _, m := range n.Modules(RoleInput) {
		m.Input().Add(in[:m.InSize()], currentRow(m))
		in = in[m.InSize():]
	}

	for _, c := range n.order {
		c.Forward()
	}

	out := n.output.Row(t)
	for _, m := range n.Modules(RoleOutput) {
		copy(out, m.Output().Row(m.Timestep()-1))
		out = out[m.OutSize():]
	}
}

func (n *Network) backward() {
	this := n.timestep - 1

	outerr := n.outerror.Row(this)
	for _, m := range n.Modules(RoleOutput) {
		if !m.ErrorAgnostic() {
			m.OutError().Add(outerr[:m.OutSize()], m.Timestep()-1)
		}
		outerr = outerr[m.OutSize():]
	}

	// Error-agnostic components only rewind their timestep.
	for i := len(n.order) - 1; i >= 0; i-- {
		if c := n.order[i]; c.ErrorAgnostic() {
			c.DryBackward()
		} else {
			c.Backward()
		}
	}

	inerr := n.inerror.Row(this)
	for _, m := range n.Modules(RoleInput) {
		copy(inerr, m.InError().Row(currentRow(m)))
		inerr = inerr[m.InSize():]
	}
}

func (n *Network) clearState() {
	for _, m := range n.modules {
		m.Clear()
	}
	for _, c := range n.connections {
		c.Clear()
	}
}
