package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Códigos de negócio do motor de agenda. slot_taken e dependency_unavailable
// são recuperáveis (o chamador reconsulta/tenta de novo); os demais encerram
// a requisição. settlement_partial não é erro: sai como status no corpo 200
// quando a baixa de estoque fica pendente depois do financeiro fechado.
const (
	CodeInvalidInput          = "invalid_input"
	CodeSlotTaken             = "slot_taken"
	CodeInvalidTransition     = "invalid_transition"
	CodeDependencyUnavailable = "dependency_unavailable"
	CodeSettlementPartial     = "settlement_partial"
	CodeOutsideWorkingHours   = "outside_working_hours"
	CodeTooSoon               = "too_soon"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrai o código de negócio, ou "" se não for BusinessError.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// WriteBusiness traduz um BusinessError para a resposta HTTP com a mensagem
// acionável esperada pelo usuário final.
func WriteBusiness(c *gin.Context, err error) bool {
	switch BusinessCode(err) {
	case CodeInvalidInput:
		BadRequest(c, CodeInvalidInput, "Dados inválidos.")
	case CodeSlotTaken:
		Conflict(c, CodeSlotTaken, "Horário acabou de ser ocupado. Escolha outro horário.")
	case CodeInvalidTransition:
		UnprocessableEntity(c, CodeInvalidTransition, "Agendamento já encerrado. Crie um novo agendamento.")
	case CodeDependencyUnavailable:
		ServiceUnavailable(c, CodeDependencyUnavailable, "Serviço temporariamente indisponível. Tente novamente.")
	case CodeOutsideWorkingHours:
		BadRequest(c, CodeOutsideWorkingHours, "Fora do horário de atendimento.")
	case CodeTooSoon:
		BadRequest(c, CodeTooSoon, "Horário inválido.")
	case "not_found":
		NotFound(c, "not_found", "Registro não encontrado.")
	case "service_not_found":
		BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case "appointment_not_found":
		NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case "product_not_found":
		BadRequest(c, "product_not_found", "Produto não encontrado.")
	default:
		return false
	}
	return true
}
