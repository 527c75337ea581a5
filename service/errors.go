package service

import "fmt"

// ConfigurationError señala parámetros de construcción inválidos (régimen
// desconocido, plazo no positivo, lista requerida ausente). Se produce antes
// de correr cualquier simulación y nunca se reintenta.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// ConsistencyError señala entradas que no cuadran entre sí al ensamblar un
// escenario (financiamiento que no suma, fila de aportes sin 12 meses).
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string { return e.Msg }

func consistencyErrorf(format string, args ...any) error {
	return &ConsistencyError{Msg: fmt.Sprintf(format, args...)}
}
