package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnect_EmptyURI(t *testing.T) {
	_, err := Connect(context.Background(), "", "hrone", time.Second)
	assert.EqualError(t, err, "mongo uri is empty")
}

func TestConnect_InvalidURI(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-uri", "hrone", time.Second)
	assert.ErrorContains(t, err, "failed to connect to MongoDB")
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://nope")
	assert.ErrorContains(t, err, "invalid redis url")
}
