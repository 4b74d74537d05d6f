package entity

// ShelfRef identifica el nivel de detalle de una ubicación de stock.
// El valor cero es el nivel bodega (sin estantería); ShelfLevel(id) apunta a una
// estantería concreta. Son espacios de identidad disjuntos: el bucket a nivel
// bodega nunca es intercambiable con el de una estantería, aunque compartan
// producto y bodega. En la base se persiste como cadena vacía para el nivel
// bodega, evitando la semántica de igualdad de NULL.
type ShelfRef struct {
	id string
}

// WarehouseLevel devuelve la referencia a nivel bodega (sin estantería).
func WarehouseLevel() ShelfRef { return ShelfRef{} }

// ShelfLevel devuelve la referencia a una estantería concreta.
func ShelfLevel(id string) ShelfRef { return ShelfRef{id: id} }

// ShelfRefFromKey reconstruye la referencia desde la columna shelf_id ('' = nivel bodega).
func ShelfRefFromKey(key string) ShelfRef { return ShelfRef{id: key} }

// IsShelf indica si la referencia apunta a una estantería.
func (s ShelfRef) IsShelf() bool { return s.id != "" }

// ShelfID devuelve el id de la estantería, o vacío a nivel bodega.
func (s ShelfRef) ShelfID() string { return s.id }

// Key devuelve el valor a persistir en shelf_id ('' = nivel bodega).
func (s ShelfRef) Key() string { return s.id }

func (s ShelfRef) String() string {
	if s.id == "" {
		return "bodega"
	}
	return "estantería:" + s.id
}

// StockLocation es la clave conceptual de un bucket de stock:
// (producto, bodega, estantería opcional). La cantidad asociada nunca es negativa.
type StockLocation struct {
	ProductID   string
	WarehouseID string
	Shelf       ShelfRef
}

// Key devuelve una clave estable para mapas e índices.
func (l StockLocation) Key() string {
	return l.ProductID + "|" + l.WarehouseID + "|" + l.Shelf.Key()
}
