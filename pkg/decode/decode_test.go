package decode_test

import (
	"testing"

	"github.com/JaimeStill/scribe/pkg/decode"
)

type nodeData struct {
	Node      string `json:"node"`
	Iteration int    `json:"iteration"`
}

func TestFromMap(t *testing.T) {
	got, err := decode.FromMap[nodeData](map[string]any{
		"node":      "agent-0",
		"iteration": 1,
		"extra":     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Node != "agent-0" || got.Iteration != 1 {
		t.Errorf("FromMap() = %+v", got)
	}
}

func TestFromMap_TypeMismatch(t *testing.T) {
	_, err := decode.FromMap[nodeData](map[string]any{"iteration": "two"})
	if err == nil {
		t.Error("expected error for mismatched iteration type")
	}
}
