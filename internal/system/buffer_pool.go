package system

import (
	"sync"
)

// PixelPool предоставляет механизмы повторного использования буферов пикселей
// для снижения нагрузки на Garbage Collector (GC).
type PixelPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &PixelPool{
	pools: make(map[int]*sync.Pool),
}

// GetPixels возвращает обнулённый буфер длины n из пула или создает новый,
// если в пуле нет подходящего по размеру объекта.
// В пуле хранятся указатели, чтобы Put не выделял память под заголовок среза.
func GetPixels(n int) *[]uint8 {
	return globalPool.Get(n)
}

// PutPixels возвращает буфер в пул для повторного использования.
func PutPixels(pix *[]uint8) {
	globalPool.Put(pix)
}

func (p *PixelPool) Get(n int) *[]uint8 {
	p.mu.RLock()
	pool, exists := p.pools[n]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[n]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					pix := make([]uint8, n)
					return &pix
				},
			}
			p.pools[n] = pool
		}
		p.mu.Unlock()
	}

	pix := pool.Get().(*[]uint8)
	clear(*pix)
	return pix
}

func (p *PixelPool) Put(pix *[]uint8) {
	if pix == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[len(*pix)]
	p.mu.RUnlock()

	if exists {
		pool.Put(pix)
	}
}
