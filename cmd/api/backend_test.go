package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

func TestOpenBackend(t *testing.T) {
	log := logger.Discard()

	b, err := openBackend(context.Background(), config.Config{Store: "memory"}, log)
	require.NoError(t, err)
	assert.Nil(t, b.db)
	assert.NotNil(t, b.uow)
	assert.NotNil(t, b.orders)
	b.close()

	_, err = openBackend(context.Background(), config.Config{Store: "sqlite"}, log)
	assert.ErrorContains(t, err, "unknown STORE")
}

func TestBuildSinks(t *testing.T) {
	log := logger.Discard()

	sinks, closeAll, err := buildSinks(config.Notify{Sinks: []string{"log", "kafka", "sendgrid"}, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "t"}, nil, log)
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.Equal(t, "log", sinks[0].Name())
	assert.Equal(t, "kafka", sinks[1].Name())
	assert.NoError(t, closeAll())

	_, _, err = buildSinks(config.Notify{Sinks: []string{"pigeon"}}, nil, log)
	assert.ErrorContains(t, err, "pigeon")
}
