package chalito

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// EstadoPedido is an order's position in the kitchen flow.
type EstadoPedido string

const (
	EstadoPendiente EstadoPedido = "pendiente"
	EstadoEnCurso   EstadoPedido = "en_curso"
	EstadoListo     EstadoPedido = "listo"
	EstadoEntregado EstadoPedido = "entregado"
	EstadoCancelado EstadoPedido = "cancelado"
)

// NextEstado returns the next step in the pendiente → en_curso → listo →
// entregado flow. Terminal and cancelled orders have no next step.
func NextEstado(e EstadoPedido) (EstadoPedido, bool) {
	switch e {
	case EstadoPendiente:
		return EstadoEnCurso, true
	case EstadoEnCurso:
		return EstadoListo, true
	case EstadoListo:
		return EstadoEntregado, true
	}
	return "", false
}

// TipoEntrega is how an order reaches the customer.
type TipoEntrega string

const (
	EntregaRetiro   TipoEntrega = "retiro"
	EntregaDelivery TipoEntrega = "delivery"
	EntregaSalon    TipoEntrega = "salon"
)

// Cliente identifies the customer on an order.
type Cliente struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// PedidoItem is one order line.
type PedidoItem struct {
	ArticuloID    int     `json:"articuloId"`
	Nombre        string  `json:"nombre,omitempty"`
	Cantidad      int     `json:"cantidad"`
	Precio        float64 `json:"precio,omitempty"`
	Subtotal      float64 `json:"subtotal,omitempty"`
	Observaciones string  `json:"observaciones"`
}

// PedidoInput is the payload for CrearPedido, normally assembled through
// [PedidoBuilder].
type PedidoInput struct {
	Cliente       Cliente      `json:"cliente"`
	Items         []PedidoItem `json:"items"`
	TipoEntrega   TipoEntrega  `json:"tipoEntrega"`
	FechaEntrega  string       `json:"fechaEntrega"`
	Observaciones string       `json:"observaciones"`
	Total         float64      `json:"total"`
}

// Pedido is an order as served by the backend.
type Pedido struct {
	ID            int          `json:"id"`
	Numero        string       `json:"numero"`
	Cliente       Cliente      `json:"cliente"`
	Items         []PedidoItem `json:"items"`
	TipoEntrega   TipoEntrega  `json:"tipoEntrega"`
	FechaEntrega  string       `json:"fechaEntrega"`
	Observaciones string       `json:"observaciones"`
	Total         float64      `json:"total"`
	Estado        EstadoPedido `json:"estado"`
	Empleado      string       `json:"empleado,omitempty"`
	CreadoEn      string       `json:"createdAt,omitempty"`
}

// PedidoFiltros narrows Pedidos listings. Zero values mean "no filter".
type PedidoFiltros struct {
	Estado      EstadoPedido
	Fecha       string
	TipoEntrega TipoEntrega
	Limite      int
	Pagina      int
}

// PedidoContadores is the per-state order count for a day, feeding the board
// tab badges.
type PedidoContadores struct {
	Pendientes int `json:"pendientes"`
	EnCurso    int `json:"enCurso"`
	Listos     int `json:"listos"`
	Entregados int `json:"entregados"`
	Cancelados int `json:"cancelados"`
}

func (f PedidoFiltros) query() url.Values {
	q := url.Values{}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.Fecha != "" {
		q.Set("fecha", f.Fecha)
	}
	if f.TipoEntrega != "" {
		q.Set("tipoEntrega", string(f.TipoEntrega))
	}
	if f.Limite > 0 {
		q.Set("limite", strconv.Itoa(f.Limite))
	}
	if f.Pagina > 0 {
		q.Set("pagina", strconv.Itoa(f.Pagina))
	}
	return q
}

// CrearPedido submits a new order and returns the created record.
func (c *Client) CrearPedido(ctx context.Context, in PedidoInput) (Pedido, error) {
	if c == nil || c.gateway == nil {
		return Pedido{}, ErrClientNotReady
	}

	var resp envelope[Pedido]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   c.config.API.PedidosPath,
		body:   in,
	}, &resp)
	if err != nil {
		return Pedido{}, err
	}
	return resp.Data, nil
}

// Pedidos lists orders, optionally filtered by state, date, delivery type,
// and page.
func (c *Client) Pedidos(ctx context.Context, filtros PedidoFiltros) ([]Pedido, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	var resp envelope[[]Pedido]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.PedidosPath,
		query:  filtros.query(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PedidoPorID retrieves a single order.
func (c *Client) PedidoPorID(ctx context.Context, id int) (Pedido, error) {
	if c == nil || c.gateway == nil {
		return Pedido{}, ErrClientNotReady
	}

	var resp envelope[Pedido]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.PedidosPath + "/" + strconv.Itoa(id),
	}, &resp)
	if err != nil {
		return Pedido{}, err
	}
	return resp.Data, nil
}

// Contadores returns per-state order counts, for fecha when given (YYYY-MM-DD)
// or for today otherwise.
func (c *Client) Contadores(ctx context.Context, fecha string) (PedidoContadores, error) {
	if c == nil || c.gateway == nil {
		return PedidoContadores{}, ErrClientNotReady
	}

	q := url.Values{}
	if fecha != "" {
		q.Set("fecha", fecha)
	}

	var resp envelope[PedidoContadores]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.PedidosPath + "/contadores",
		query:  q,
	}, &resp)
	if err != nil {
		return PedidoContadores{}, err
	}
	return resp.Data, nil
}

// ActualizarEstadoPedido moves an order to a new state, recording which
// employee made the change. The backend rejects transitions it considers
// invalid; the client only offers NextEstado as a convenience.
func (c *Client) ActualizarEstadoPedido(ctx context.Context, id int, estado EstadoPedido, empleado string) (Pedido, error) {
	if c == nil || c.gateway == nil {
		return Pedido{}, ErrClientNotReady
	}

	var resp envelope[Pedido]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPatch,
		path:   c.config.API.PedidosPath + "/" + strconv.Itoa(id) + "/estado",
		body: map[string]string{
			"estado":   string(estado),
			"empleado": empleado,
		},
	}, &resp)
	if err != nil {
		return Pedido{}, err
	}
	return resp.Data, nil
}
