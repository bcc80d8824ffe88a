package chalito

import (
	"errors"
	"testing"
)

var (
	empanada = Articulo{ID: 1, Codigo: "EMP-01", Nombre: "Empanada de carne", Precio: 850}
	milanesa = Articulo{ID: 2, Codigo: "MIL-01", Nombre: "Milanesa completa", Precio: 6200}
)

func TestPedidoAgregarIncrementsExistingLine(t *testing.T) {
	b := NewPedido().Agregar(empanada).Agregar(milanesa).Agregar(empanada)

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Cantidad != 2 || items[0].Subtotal != 1700 {
		t.Fatalf("empanada line = %+v", items[0])
	}
	if b.Total() != 1700+6200 {
		t.Fatalf("total = %v", b.Total())
	}
}

func TestPedidoSetCantidadRecomputesSubtotal(t *testing.T) {
	b := NewPedido().Agregar(milanesa).SetCantidad(milanesa.ID, 3)

	items := b.Items()
	if items[0].Cantidad != 3 || items[0].Subtotal != 18600 {
		t.Fatalf("line = %+v", items[0])
	}

	// Zero or negative quantity removes the line.
	b.SetCantidad(milanesa.ID, 0)
	if len(b.Items()) != 0 {
		t.Fatal("zero quantity should remove the line")
	}
}

func TestPedidoQuitarPreservesOrder(t *testing.T) {
	extra := Articulo{ID: 3, Nombre: "Flan", Precio: 1200}
	b := NewPedido().Agregar(empanada).Agregar(milanesa).Agregar(extra)
	b.Quitar(milanesa.ID)

	items := b.Items()
	if len(items) != 2 || items[0].ArticuloID != 1 || items[1].ArticuloID != 3 {
		t.Fatalf("lines after removal = %+v", items)
	}
}

func TestPedidoObservacionItem(t *testing.T) {
	b := NewPedido().Agregar(empanada).ObservacionItem(empanada.ID, "sin cebolla")
	if b.Items()[0].Observaciones != "sin cebolla" {
		t.Fatalf("line = %+v", b.Items()[0])
	}
}

func TestPedidoValidar(t *testing.T) {
	err := NewPedido().Validar()
	if !errors.Is(err, ErrPedidoSinCliente) {
		t.Fatalf("expected missing-client error, got %v", err)
	}
	if !errors.Is(err, ErrPedidoVacio) {
		t.Fatalf("expected empty-order error, got %v", err)
	}
	if !errors.Is(err, ErrPedidoSinFecha) {
		t.Fatalf("expected missing-date error, got %v", err)
	}

	// Delivery without an address is the one conditional rule.
	b := NewPedido().
		Cliente(Cliente{Nombre: "Marta"}).
		TipoEntrega(EntregaDelivery).
		FechaEntrega("2026-08-30T20:30").
		Agregar(empanada)
	if err := b.Validar(); !errors.Is(err, ErrPedidoSinDireccion) {
		t.Fatalf("expected missing-address error, got %v", err)
	}

	b.Cliente(Cliente{Nombre: "Marta", Direccion: "Av. Siempre Viva 742"})
	if err := b.Validar(); err != nil {
		t.Fatalf("expected valid order, got %v", err)
	}

	// Retiro never requires an address.
	retiro := NewPedido().
		Cliente(Cliente{Nombre: "Marta"}).
		FechaEntrega("2026-08-30T20:30").
		Agregar(empanada)
	if err := retiro.Validar(); err != nil {
		t.Fatalf("expected valid retiro order, got %v", err)
	}
}

func TestPedidoBuild(t *testing.T) {
	b := NewPedido().
		Cliente(Cliente{Nombre: "Marta", Telefono: "555-0101"}).
		FechaEntrega("2026-08-30T20:30").
		Observaciones("tocar timbre").
		Agregar(empanada).
		SetCantidad(empanada.ID, 4)

	input, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if input.TipoEntrega != EntregaRetiro {
		t.Fatalf("default delivery type = %q", input.TipoEntrega)
	}
	if input.Total != 3400 {
		t.Fatalf("total = %v", input.Total)
	}
	if len(input.Items) != 1 || input.Items[0].Cantidad != 4 {
		t.Fatalf("items = %+v", input.Items)
	}

	// Build returns the validation failure for incomplete orders.
	if _, err := NewPedido().Build(); err == nil {
		t.Fatal("expected build to fail on an empty order")
	}
}
