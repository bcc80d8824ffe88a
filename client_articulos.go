package chalito

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Articulo is a menu item as served by the backend.
type Articulo struct {
	ID                int     `json:"id"`
	Codigo            string  `json:"codigo"`
	Nombre            string  `json:"nombre"`
	Descripcion       string  `json:"descripcion"`
	Categoria         string  `json:"categoria"`
	Precio            float64 `json:"precio"`
	TiempoPreparacion int     `json:"tiempoPreparacion"`
	Disponible        bool    `json:"disponible"`
}

// ArticuloInput carries the fields accepted by create and update calls.
type ArticuloInput struct {
	Codigo            string  `json:"codigo"`
	Nombre            string  `json:"nombre"`
	Descripcion       string  `json:"descripcion"`
	Categoria         string  `json:"categoria"`
	Precio            float64 `json:"precio"`
	TiempoPreparacion int     `json:"tiempoPreparacion"`
	Disponible        bool    `json:"disponible"`
}

// ArticuloFiltros narrows Articulos listings. Zero values mean "no filter";
// Disponible is a pointer so false is distinguishable from unset.
type ArticuloFiltros struct {
	Categoria  string
	Disponible *bool
}

// ArticuloEstadisticas summarizes the catalog. Computed client-side from the
// full listing, mirroring the dashboard cards.
type ArticuloEstadisticas struct {
	Total              int
	Disponibles        int
	NoDisponibles      int
	TotalCategorias    int
	PromedioPrecio     float64
	PromedioTiempoPrep int
}

// envelope is the backend's resource wrapper: {success, mensaje, data}.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Mensaje string `json:"mensaje"`
	Data    T      `json:"data"`
}

func (f ArticuloFiltros) query() url.Values {
	q := url.Values{}
	if f.Categoria != "" {
		q.Set("categoria", f.Categoria)
	}
	if f.Disponible != nil {
		q.Set("disponible", strconv.FormatBool(*f.Disponible))
	}
	return q
}

// Articulos lists menu items, optionally filtered by category and availability.
func (c *Client) Articulos(ctx context.Context, filtros ArticuloFiltros) ([]Articulo, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	var resp envelope[[]Articulo]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.ArticulosPath,
		query:  filtros.query(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, resp.Mensaje)
	}
	return resp.Data, nil
}

// ArticuloPorID retrieves a single menu item.
func (c *Client) ArticuloPorID(ctx context.Context, id int) (Articulo, error) {
	if c == nil || c.gateway == nil {
		return Articulo{}, ErrClientNotReady
	}

	var resp envelope[Articulo]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.ArticulosPath + "/" + strconv.Itoa(id),
	}, &resp)
	if err != nil {
		return Articulo{}, err
	}
	return resp.Data, nil
}

// Categorias lists the distinct article categories.
func (c *Client) Categorias(ctx context.Context) ([]string, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	var resp envelope[[]string]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.ArticulosPath + "/categorias",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CrearArticulo adds a menu item and returns the created record.
func (c *Client) CrearArticulo(ctx context.Context, in ArticuloInput) (Articulo, error) {
	if c == nil || c.gateway == nil {
		return Articulo{}, ErrClientNotReady
	}

	var resp envelope[Articulo]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   c.config.API.ArticulosPath,
		body:   in,
	}, &resp)
	if err != nil {
		return Articulo{}, err
	}
	return resp.Data, nil
}

// ActualizarArticulo replaces a menu item's fields.
func (c *Client) ActualizarArticulo(ctx context.Context, id int, in ArticuloInput) (Articulo, error) {
	if c == nil || c.gateway == nil {
		return Articulo{}, ErrClientNotReady
	}

	var resp envelope[Articulo]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPut,
		path:   c.config.API.ArticulosPath + "/" + strconv.Itoa(id),
		body:   in,
	}, &resp)
	if err != nil {
		return Articulo{}, err
	}
	return resp.Data, nil
}

// EliminarArticulo removes a menu item. The backend marks it inactive rather
// than deleting the row; it stops appearing in listings either way.
func (c *Client) EliminarArticulo(ctx context.Context, id int) error {
	if c == nil || c.gateway == nil {
		return ErrClientNotReady
	}

	return c.gateway.do(ctx, apiRequest{
		method: http.MethodDelete,
		path:   c.config.API.ArticulosPath + "/" + strconv.Itoa(id),
	}, nil)
}

// CambiarDisponibilidad toggles whether a menu item can be ordered.
func (c *Client) CambiarDisponibilidad(ctx context.Context, id int, disponible bool) (Articulo, error) {
	if c == nil || c.gateway == nil {
		return Articulo{}, ErrClientNotReady
	}

	var resp envelope[Articulo]
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPut,
		path:   c.config.API.ArticulosPath + "/" + strconv.Itoa(id),
		body:   map[string]bool{"disponible": disponible},
	}, &resp)
	if err != nil {
		return Articulo{}, err
	}
	return resp.Data, nil
}

// BuscarArticulos fetches the (optionally filtered) listing and narrows it
// locally by a search term matched against nombre, codigo, and descripcion.
// The backend has no search endpoint, so the match happens client-side.
func (c *Client) BuscarArticulos(ctx context.Context, termino string, filtros ArticuloFiltros) ([]Articulo, error) {
	articulos, err := c.Articulos(ctx, filtros)
	if err != nil {
		return nil, err
	}

	termino = strings.ToLower(termino)
	matched := make([]Articulo, 0, len(articulos))
	for _, a := range articulos {
		if strings.Contains(strings.ToLower(a.Nombre), termino) ||
			strings.Contains(strings.ToLower(a.Codigo), termino) ||
			strings.Contains(strings.ToLower(a.Descripcion), termino) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// Estadisticas computes catalog summary numbers from the full listing.
func (c *Client) Estadisticas(ctx context.Context) (ArticuloEstadisticas, error) {
	articulos, err := c.Articulos(ctx, ArticuloFiltros{})
	if err != nil {
		return ArticuloEstadisticas{}, err
	}
	categorias, err := c.Categorias(ctx)
	if err != nil {
		return ArticuloEstadisticas{}, err
	}

	stats := ArticuloEstadisticas{
		Total:           len(articulos),
		TotalCategorias: len(categorias),
	}
	var sumPrecio float64
	var sumTiempo int
	for _, a := range articulos {
		if a.Disponible {
			stats.Disponibles++
		} else {
			stats.NoDisponibles++
		}
		sumPrecio += a.Precio
		sumTiempo += a.TiempoPreparacion
	}
	if len(articulos) > 0 {
		stats.PromedioPrecio = sumPrecio / float64(len(articulos))
		stats.PromedioTiempoPrep = int(float64(sumTiempo)/float64(len(articulos)) + 0.5)
	}
	return stats, nil
}
