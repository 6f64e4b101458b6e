package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishJSONUnencodablePayload(t *testing.T) {
	p := &Publisher{}

	// channels cannot be JSON-encoded; the error must surface before any
	// broker interaction
	err := p.PublishJSON(context.Background(), "ticket.issued", make(chan int))

	require.Error(t, err)
	require.Contains(t, err.Error(), "encode ticket.issued event")
}
