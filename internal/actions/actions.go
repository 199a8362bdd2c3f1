// Package actions defines the contracts every action handler implements.
// Each handler lives in its own package: prompt construction, one gateway
// call, strict response decoding, handler-specific reshaping.
package actions

import (
	"context"
	"encoding/json"

	"leadflow/pkg/catalog"
)

// Completer is the slice of the gateway client a handler needs.
type Completer interface {
	ModelFor(tier catalog.ModelTier) string
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// Handler executes one named action against a decoded request payload.
type Handler interface {
	Name() catalog.Action
	Handle(ctx context.Context, payload json.RawMessage) (interface{}, error)
}
