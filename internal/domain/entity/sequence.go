package entity

import (
	"fmt"
	"strings"
)

// SequenceSpec define el formato de una secuencia de identificadores:
// prefijo fijo más sufijo numérico con ceros a la izquierda. La configuración
// viene de fuera (por tipo de comprobante, grupo de producto o tipo de cuenta).
type SequenceSpec struct {
	Prefix string
	Length int // dígitos del sufijo numérico
}

// Format compone el identificador: prefijo + valor con padding de ceros.
func (s SequenceSpec) Format(value int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Length, value)
}

// TotalLength es la longitud exacta de un identificador válido de esta secuencia.
// El filtro por longitud evita que un prefijo que es prefijo textual de otro
// ("T" vs "TR") capture identificadores ajenos al escanear.
func (s SequenceSpec) TotalLength() int {
	return len(s.Prefix) + s.Length
}

// Matches indica si un identificador existente pertenece a esta secuencia:
// empieza por el prefijo y tiene exactamente la longitud total configurada.
func (s SequenceSpec) Matches(identifier string) bool {
	return len(identifier) == s.TotalLength() && strings.HasPrefix(identifier, s.Prefix)
}
