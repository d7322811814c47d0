package dto

// ListResult resultado uniforme de los listados: {items, length}.
// Length es el total de coincidencias, no el tamaño de la página.
type ListResult[T any] struct {
	Items  []T   `json:"items"`
	Length int64 `json:"length"`
}

// NewListResult construye el resultado garantizando items como arreglo JSON
// (nunca null).
func NewListResult[T any](items []T, length int64) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Length: length}
}

// EmptyListResult respuesta de los listados cuando el actor no tiene
// identidad: vacío sin consultar el datastore.
func EmptyListResult[T any]() *ListResult[T] {
	return &ListResult[T]{Items: []T{}}
}
