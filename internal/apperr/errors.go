// internal/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
)

// Tipos de erro do núcleo financeiro. Os handlers mapeiam cada tipo para o
// status HTTP correspondente; nada aqui conhece HTTP.

// ValidationError: entrada malformada, rejeitada antes de qualquer escrita.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError: registro inexistente ou de outra organização.
type NotFoundError struct {
	Recurso string
}

func (e *NotFoundError) Error() string { return e.Recurso + " não encontrado(a)" }

// BusinessRuleError: operação válida na forma, proibida pela regra de negócio.
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string { return e.Msg }

// StorageError: falha do banco (constraint, conflito de transação). A causa
// original fica embrulhada para log, nunca exposta ao chamador.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "erro de armazenamento: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func Validacao(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func NaoEncontrado(recurso string) error {
	return &NotFoundError{Recurso: recurso}
}

func RegraDeNegocio(format string, args ...any) error {
	return &BusinessRuleError{Msg: fmt.Sprintf(format, args...)}
}

func Armazenamento(err error) error {
	return &StorageError{Err: err}
}

func IsValidacao(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNaoEncontrado(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsRegraDeNegocio(err error) bool {
	var e *BusinessRuleError
	return errors.As(err, &e)
}
