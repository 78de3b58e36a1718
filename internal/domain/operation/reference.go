package operation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// Códigos cortos por tipo para la referencia de una operación.
var typeCodes = map[entity.OperationType]string{
	entity.OperationTypeReceipt:    "IN",
	entity.OperationTypeDelivery:   "OUT",
	entity.OperationTypeTransfer:   "INT",
	entity.OperationTypeAdjustment: "ADJ",
}

// FormatReference construye la referencia legible de una operación.
// Formato: WH/{IN|OUT|INT|ADJ}/{secuencia:04d}. Ejemplos: WH/IN/0001, WH/OUT/0042.
func FormatReference(opType entity.OperationType, sequence int64) string {
	code, ok := typeCodes[opType]
	if !ok {
		code = "OPR"
	}
	return fmt.Sprintf("WH/%s/%04d", code, sequence)
}

// ParseReferenceSequence extrae el segmento numérico final de una referencia.
// Devuelve 0 si el formato no coincide (referencias manuales o legadas).
func ParseReferenceSequence(reference string) int64 {
	parts := strings.Split(reference, "/")
	if len(parts) != 3 {
		return 0
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0
	}
	return seq
}
