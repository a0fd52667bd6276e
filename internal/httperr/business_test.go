package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessCode(t *testing.T) {
	assert.Equal(t, CodeSlotTaken, BusinessCode(ErrBusiness(CodeSlotTaken)))
	assert.Equal(t, "", BusinessCode(errors.New("driver: bad connection")))
	assert.Equal(t, "", BusinessCode(nil))

	wrapped := fmt.Errorf("criando agendamento: %w", ErrBusiness(CodeTooSoon))
	assert.Equal(t, CodeTooSoon, BusinessCode(wrapped))
	assert.True(t, IsBusiness(wrapped, CodeTooSoon))
	assert.False(t, IsBusiness(wrapped, CodeSlotTaken))
}

func TestWriteBusiness_MapeiaStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		code   string
		status int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeSlotTaken, http.StatusConflict},
		{CodeInvalidTransition, http.StatusUnprocessableEntity},
		{CodeDependencyUnavailable, http.StatusServiceUnavailable},
		{CodeOutsideWorkingHours, http.StatusBadRequest},
		{CodeTooSoon, http.StatusBadRequest},
		{"not_found", http.StatusNotFound},
		{"appointment_not_found", http.StatusNotFound},
		{"service_not_found", http.StatusBadRequest},
		{"product_not_found", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			handled := WriteBusiness(c, ErrBusiness(tc.code))

			require.True(t, handled)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.code)
		})
	}
}

func TestWriteBusiness_ErroDesconhecidoNaoEscreve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	handled := WriteBusiness(c, errors.New("pq: connection reset"))
	assert.False(t, handled, "erro de infra fica para o handler responder 500")
}
