// Package invite genera los códigos de invitación de 8 dígitos de una firma.
//
// Formato: 5 últimos dígitos del timestamp en milisegundos + 1 dígito derivado del
// último carácter del ID de la firma + 2 dígitos aleatorios (10-99).
// Es un código de usabilidad, no una frontera de seguridad: el espacio de búsqueda
// es mucho menor que el de 8 dígitos independientes.
package invite

import (
	"fmt"
	"math/rand/v2"
	"time"
	"unicode/utf8"
)

// CodeLength longitud fija del código.
const CodeLength = 8

// RandSource fuente de enteros aleatorios en [0, n). *rand.Rand de math/rand/v2 la satisface.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand fuente global de math/rand/v2, segura para uso concurrente.
var DefaultRand RandSource = globalRand{}

// GenerateCode construye el código para companyID en el instante now.
func GenerateCode(companyID string, now time.Time, rnd RandSource) string {
	timePart := now.UnixMilli() % 100000
	if timePart < 0 {
		timePart = -timePart
	}
	return fmt.Sprintf("%05d%d%02d", timePart, companyDigit(companyID), 10+rnd.IntN(90))
}

// companyDigit código del último carácter del ID módulo 10; 0 si el ID está vacío.
func companyDigit(companyID string) int {
	r, _ := utf8.DecodeLastRuneInString(companyID)
	if r == utf8.RuneError {
		return 0
	}
	return int(r) % 10
}

// IsWellFormed informa si s tiene la forma de un código (8 dígitos ASCII).
func IsWellFormed(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
