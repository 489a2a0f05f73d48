package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mrpproducao/internal/apierror"
	"mrpproducao/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal is a struct; teach the validator to treat it as a
	// float so min/max tags work on money and quantity fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate binds the JSON body into req and runs struct validation.
// On failure it writes the error response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Corpo da requisicao invalido"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseIDParam parses the :id path segment as a UUID.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Identificador invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service sentinel errors to HTTP responses. Unknown
// errors go through the error middleware as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNaoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("Registro nao encontrado"))
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New("Credenciais invalidas"))
	case errors.Is(err, service.ErrUsuarioInativo):
		c.JSON(http.StatusForbidden, apierror.New("Usuario inativo"))
	case errors.Is(err, service.ErrFornecedorComPedidos):
		c.JSON(http.StatusConflict, apierror.NewWithCode(
			"Fornecedor possui pedidos vinculados e nao pode ser excluido",
			"FORNECEDOR_COM_PEDIDOS"))
	case errors.Is(err, service.ErrUsernameEmUso),
		errors.Is(err, service.ErrCodigoEmUso),
		errors.Is(err, service.ErrCNPJEmUso),
		errors.Is(err, service.ErrMaterialJaNoBOM):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrEstoqueMinMax),
		errors.Is(err, service.ErrPedidoSemItens),
		errors.Is(err, service.ErrQuantidadeInvalida),
		errors.Is(err, service.ErrValorInvalido),
		errors.Is(err, service.ErrStatusInvalido),
		errors.Is(err, service.ErrTransicaoInvalida),
		errors.Is(err, service.ErrFornecedorInvalido),
		errors.Is(err, service.ErrMaterialInvalido):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
