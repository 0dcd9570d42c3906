package invite

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func TestGenerateCode_OchoDigitosASCII(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	ids := []string{"", "a", "firma-9f", "Ş", "00000000-0000-0000-0000-000000000002"}
	for i := 0; i < 500; i++ {
		now := time.UnixMilli(int64(i) * 7919)
		code := GenerateCode(ids[i%len(ids)], now, rnd)
		assert.Len(t, code, CodeLength)
		assert.True(t, IsWellFormed(code), "código %q debe tener solo dígitos", code)
	}
}

func TestGenerateCode_Composicion(t *testing.T) {
	// 1700000012345 ms -> últimos 5 dígitos "12345"; 'c' = 99 -> 9; 10 + 5 = 15
	now := time.UnixMilli(1700000012345)
	assert.Equal(t, "12345915", GenerateCode("abc", now, fixedRand(5)))
}

func TestGenerateCode_RellenaTimestampConCeros(t *testing.T) {
	now := time.UnixMilli(1700000000042)
	// '2' = 50 -> 0; 10 + 89 = 99
	assert.Equal(t, "00042099", GenerateCode("x2", now, fixedRand(89)))
}

func TestGenerateCode_PuedeColisionar(t *testing.T) {
	// Debilidad conocida: IDs distintos con el mismo dígito derivado y el mismo
	// timestamp/aleatorio producen el mismo código.
	now := time.UnixMilli(1700000054321)
	a := GenerateCode("firma-a", now, fixedRand(3)) // 'a' = 97 -> 7
	b := GenerateCode("firma-k", now, fixedRand(3)) // 'k' = 107 -> 7
	assert.Equal(t, a, b)
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, IsWellFormed("01234567"))
	assert.False(t, IsWellFormed("0123456"))
	assert.False(t, IsWellFormed("0123456a"))
	assert.False(t, IsWellFormed("０1234567"))
}
