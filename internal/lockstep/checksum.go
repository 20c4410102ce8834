package lockstep

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/annel0/rts-spatial/internal/vec"
)

// Метки записей, чтобы разные последовательности не давали одинаковый поток байт
const (
	tagActors byte = iota + 1
	tagCells
	tagBool
	tagPos
)

// Hasher накапливает 64-битную контрольную сумму результатов запросов тика.
// Сумма зависит от порядка записей и порядка элементов внутри них:
// участники lockstep сравнивают её, чтобы обнаружить рассинхронизацию.
type Hasher struct {
	digest *xxhash.Digest
	buf    [binary.MaxVarintLen64]byte
}

// NewHasher создаёт пустой Hasher
func NewHasher() *Hasher {
	return &Hasher{digest: xxhash.New()}
}

// WriteActorIDs добавляет упорядоченный список актёров
func (h *Hasher) WriteActorIDs(ids []uuid.UUID) {
	h.writeHeader(tagActors, len(ids))
	for _, id := range ids {
		h.digest.Write(id[:])
	}
}

// WriteCells добавляет путь по клеткам
func (h *Hasher) WriteCells(cells []vec.CPos) {
	h.writeHeader(tagCells, len(cells))
	for _, c := range cells {
		h.writeInt(int64(c.X))
		h.writeInt(int64(c.Y))
	}
}

// WriteBool добавляет результат проверки (например, линии обзора)
func (h *Hasher) WriteBool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	h.digest.Write([]byte{tagBool, b})
}

// WritePos добавляет мировую позицию
func (h *Hasher) WritePos(p vec.WPos) {
	h.digest.Write([]byte{tagPos})
	h.writeInt(int64(p.X))
	h.writeInt(int64(p.Y))
	h.writeInt(int64(p.Z))
}

// Sum64 возвращает текущую сумму, не сбрасывая состояние
func (h *Hasher) Sum64() uint64 {
	return h.digest.Sum64()
}

// Reset очищает состояние перед следующим тиком
func (h *Hasher) Reset() {
	h.digest.Reset()
}

func (h *Hasher) writeHeader(tag byte, n int) {
	h.digest.Write([]byte{tag})
	h.writeInt(int64(n))
}

func (h *Hasher) writeInt(v int64) {
	n := binary.PutVarint(h.buf[:], v)
	h.digest.Write(h.buf[:n])
}
