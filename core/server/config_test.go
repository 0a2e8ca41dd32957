package server_test

import (
	"testing"
	"time"

	"data-extractor/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"Port Only", "8080", ":8080"},
		{"Host And Port", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"Empty", "", ":"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_RequestTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Minute, server.Config{}.RequestTimeout())
	assert.Equal(t, 30*time.Second, server.Config{RequestTimeoutSeconds: 30}.RequestTimeout())
}
