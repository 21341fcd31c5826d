package main

import (
	"testing"

	"github.com/gin-contrib/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect/config"
)

func TestCORSConfigWithoutOrigins(t *testing.T) {
	cc := corsConfig(&config.Config{})

	assert.True(t, cc.AllowAllOrigins)
	assert.False(t, cc.AllowCredentials)
	// cors.New panics on an invalid config; the default must construct.
	require.NotPanics(t, func() { cors.New(cc) })
}

func TestCORSConfigWithConfiguredOrigins(t *testing.T) {
	cc := corsConfig(&config.Config{CORSAllowedOrigins: "https://app.example.com, https://admin.example.com"})

	assert.False(t, cc.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cc.AllowOrigins)
	assert.True(t, cc.AllowCredentials)
	require.NotPanics(t, func() { cors.New(cc) })
}
