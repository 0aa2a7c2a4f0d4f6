package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products     ProductRepository
	Movements    InventoryMovementRepository
	Services     ServiceRepository
	Sales        SaleRepository
	CashFlow     CashFlowRepository
	Appointments AppointmentRepository
}

// UnitOfWork ejecuta fn dentro de una transacción: si fn devuelve error (o hace panic) se
// descartan todas las escrituras; si no, se confirman juntas.
// fn puede ejecutarse más de una vez si el almacenamiento pide reintentar (deadlock, serialización).
type UnitOfWork interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
