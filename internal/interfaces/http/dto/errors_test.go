package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"invalid credentials", ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"insufficient stock", "INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"refund over cap", "REFUND_EXCEEDS_AMOUNT", http.StatusUnprocessableEntity},
		{"category not empty", "CATEGORY_NOT_EMPTY", http.StatusConflict},
		{"invalid prefix falls back to bad request", "INVALID_QUANTITY", http.StatusBadRequest},
		{"unknown code falls back to internal", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
