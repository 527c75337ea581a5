package service

const (
	MaxPrincipal    = 1_000_000_000.0 // 1 billón
	MaxInterestRate = 1000.0          // 1000% anual
	MaxTermYears    = 50
	MonthsPerYear   = 12

	DefaultFixedPeriodYears = 5 // tramos ajustables: años del bloque fijo

	DefaultSimulationYears = 30
	MaxSimulationYears     = 50
	DefaultSampleCount     = 10_000
	MaxSampleCount         = 50_000

	DefaultStocksTaxRate = 25.0

	// MaxResponsePaths limita cuántas trayectorias viajan en la respuesta.
	MaxResponsePaths = 100
)
