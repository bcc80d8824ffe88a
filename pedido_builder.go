package chalito

import "errors"

// PedidoBuilder assembles an order line by line before submission: the cart
// behind the order-entry screen. It is not safe for concurrent use; each
// order-entry session owns its own builder.
type PedidoBuilder struct {
	cliente       Cliente
	tipoEntrega   TipoEntrega
	fechaEntrega  string
	observaciones string
	items         []PedidoItem
}

// NewPedido starts an empty order with delivery type retiro.
func NewPedido() *PedidoBuilder {
	return &PedidoBuilder{tipoEntrega: EntregaRetiro}
}

// Cliente sets the customer details.
func (b *PedidoBuilder) Cliente(c Cliente) *PedidoBuilder {
	b.cliente = c
	return b
}

// TipoEntrega sets how the order reaches the customer.
func (b *PedidoBuilder) TipoEntrega(t TipoEntrega) *PedidoBuilder {
	b.tipoEntrega = t
	return b
}

// FechaEntrega sets the requested delivery time.
func (b *PedidoBuilder) FechaEntrega(fecha string) *PedidoBuilder {
	b.fechaEntrega = fecha
	return b
}

// Observaciones sets the order-level note.
func (b *PedidoBuilder) Observaciones(obs string) *PedidoBuilder {
	b.observaciones = obs
	return b
}

// Agregar adds one unit of the article, or increments the existing line when
// the article is already in the cart.
func (b *PedidoBuilder) Agregar(a Articulo) *PedidoBuilder {
	for i := range b.items {
		if b.items[i].ArticuloID == a.ID {
			return b.SetCantidad(a.ID, b.items[i].Cantidad+1)
		}
	}
	b.items = append(b.items, PedidoItem{
		ArticuloID: a.ID,
		Nombre:     a.Nombre,
		Cantidad:   1,
		Precio:     a.Precio,
		Subtotal:   a.Precio,
	})
	return b
}

// SetCantidad sets a line's quantity and recomputes its subtotal. A quantity
// of zero or less removes the line.
func (b *PedidoBuilder) SetCantidad(articuloID, cantidad int) *PedidoBuilder {
	if cantidad <= 0 {
		return b.Quitar(articuloID)
	}
	for i := range b.items {
		if b.items[i].ArticuloID == articuloID {
			b.items[i].Cantidad = cantidad
			b.items[i].Subtotal = b.items[i].Precio * float64(cantidad)
			return b
		}
	}
	return b
}

// Quitar removes a line, preserving the order of the remaining lines.
func (b *PedidoBuilder) Quitar(articuloID int) *PedidoBuilder {
	for i := range b.items {
		if b.items[i].ArticuloID == articuloID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return b
		}
	}
	return b
}

// ObservacionItem sets the note on a single line.
func (b *PedidoBuilder) ObservacionItem(articuloID int, obs string) *PedidoBuilder {
	for i := range b.items {
		if b.items[i].ArticuloID == articuloID {
			b.items[i].Observaciones = obs
			return b
		}
	}
	return b
}

// Items returns a copy of the current lines.
func (b *PedidoBuilder) Items() []PedidoItem {
	out := make([]PedidoItem, len(b.items))
	copy(out, b.items)
	return out
}

// Total returns the sum of line subtotals.
func (b *PedidoBuilder) Total() float64 {
	var total float64
	for _, item := range b.items {
		total += item.Subtotal
	}
	return total
}

// Validar checks the order is submittable: named customer, at least one line,
// a delivery time, and an address when the order is a delivery. All failures
// are reported together.
func (b *PedidoBuilder) Validar() error {
	var errs []error
	if b.cliente.Nombre == "" {
		errs = append(errs, ErrPedidoSinCliente)
	}
	if len(b.items) == 0 {
		errs = append(errs, ErrPedidoVacio)
	}
	if b.fechaEntrega == "" {
		errs = append(errs, ErrPedidoSinFecha)
	}
	if b.tipoEntrega == EntregaDelivery && b.cliente.Direccion == "" {
		errs = append(errs, ErrPedidoSinDireccion)
	}
	return errors.Join(errs...)
}

// Build validates the order and returns the submission payload for
// [Client.CrearPedido].
func (b *PedidoBuilder) Build() (PedidoInput, error) {
	if err := b.Validar(); err != nil {
		return PedidoInput{}, err
	}
	return PedidoInput{
		Cliente:       b.cliente,
		Items:         b.Items(),
		TipoEntrega:   b.tipoEntrega,
		FechaEntrega:  b.fechaEntrega,
		Observaciones: b.observaciones,
		Total:         b.Total(),
	}, nil
}
