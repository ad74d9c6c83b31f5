package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recorder() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func TestSuccess(t *testing.T) {
	w, c := recorder()
	Success(c, http.StatusCreated, gin.H{"submissionId": "sub-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"submissionId":"sub-1"}}`, w.Body.String())
}

func TestError(t *testing.T) {
	w, c := recorder()
	Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not reach the forms service")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"UPSTREAM_ERROR","message":"Could not reach the forms service"}}`, w.Body.String())
}

func TestValidationError(t *testing.T) {
	w, c := recorder()
	ValidationError(c, "Please fill in all required fields", map[string]string{"phone": "phone"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Please fill in all required fields","details":{"phone":"phone"}}}`, w.Body.String())
}
