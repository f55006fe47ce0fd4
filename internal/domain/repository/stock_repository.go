package repository

import (
	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
)

// StockRepository puerto del stock a granel materializado por tupla.
type StockRepository interface {
	// Get obtiene el stock de la tupla; cantidad cero si no hay fila.
	Get(key entity.StockKey) (*entity.Stock, error)
	// GetForUpdate obtiene el stock bloqueando la fila para la transacción en
	// curso (SELECT FOR UPDATE). Tuplas disjuntas no se bloquean entre sí.
	GetForUpdate(key entity.StockKey) (*entity.Stock, error)
	// Upsert inserta o pisa la cantidad de la tupla.
	Upsert(stock *entity.Stock) error
	// FoldQuantity pliega el ledger para derivar la cantidad de la tupla.
	// Funcionalmente equivalente a Get; sirve para verificar la consistencia
	// del materializado contra los hechos inmutables.
	FoldQuantity(key entity.StockKey) (decimal.Decimal, error)
}
