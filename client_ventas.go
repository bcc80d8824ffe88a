package chalito

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// VentaItem is one invoiced line.
type VentaItem struct {
	Nombre   string  `json:"nombre"`
	Cantidad int     `json:"cantidad"`
	Precio   float64 `json:"precio"`
	Subtotal float64 `json:"subtotal"`
}

// Venta is a completed sale (invoice) as served by the backend.
type Venta struct {
	ID            int         `json:"id"`
	NumeroFactura string      `json:"numeroFactura"`
	Fecha         string      `json:"fecha"`
	Cliente       Cliente     `json:"cliente"`
	Items         []VentaItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Impuestos     float64     `json:"impuestos"`
	Total         float64     `json:"total"`
	TipoFactura   string      `json:"tipoFactura"`
	MetodoPago    string      `json:"metodoPago"`
	Estado        string      `json:"estado"`
	Empleado      string      `json:"empleado"`
	PedidoID      int         `json:"pedidoId,omitempty"`
}

// VentaFiltros narrows Ventas listings. Zero values mean "no filter".
type VentaFiltros struct {
	Fecha      string
	MetodoPago string
	Estado     string
}

// VentasResumen is the day's sales summary shown above the listing.
type VentasResumen struct {
	VentasHoy      int
	TotalFacturado float64
	TicketPromedio float64
}

func (f VentaFiltros) query() url.Values {
	q := url.Values{}
	if f.Fecha != "" {
		q.Set("fecha", f.Fecha)
	}
	if f.MetodoPago != "" {
		q.Set("metodoPago", f.MetodoPago)
	}
	if f.Estado != "" {
		q.Set("estado", f.Estado)
	}
	return q
}

// Ventas lists completed sales.
func (c *Client) Ventas(ctx context.Context, filtros VentaFiltros) ([]Venta, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	var resp envelope[[]Venta]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.VentasPath,
		query:  filtros.query(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// BuscarVentas narrows a sales listing locally by invoice number or customer
// name. The backend has no search endpoint for sales.
func BuscarVentas(ventas []Venta, termino string) []Venta {
	termino = strings.ToLower(termino)
	matched := make([]Venta, 0, len(ventas))
	for _, v := range ventas {
		if strings.Contains(strings.ToLower(v.NumeroFactura), termino) ||
			strings.Contains(strings.ToLower(v.Cliente.Nombre), termino) {
			matched = append(matched, v)
		}
	}
	return matched
}

// ResumenVentas computes the summary cards from a listing: sale count, total
// invoiced, and the average ticket. Cancelled sales are excluded from the
// money totals but counted.
func ResumenVentas(ventas []Venta) VentasResumen {
	resumen := VentasResumen{VentasHoy: len(ventas)}
	facturadas := 0
	for _, v := range ventas {
		if v.Estado == "cancelada" {
			continue
		}
		resumen.TotalFacturado += v.Total
		facturadas++
	}
	if facturadas > 0 {
		resumen.TicketPromedio = resumen.TotalFacturado / float64(facturadas)
	}
	return resumen
}
