package app

import (
	"encoding/json"
	"testing"

	"github.com/bobmcallan/folio/internal/models"
)

func TestUnmarshalArrayParam_NativeObjects(t *testing.T) {
	raw := json.RawMessage(`[{"symbol":"AAPL","quantity":10,"purchase_price":150},{"symbol":"MSFT","quantity":2,"purchase_price":300,"current_price":410.5}]`)
	var result []models.Position
	if err := unmarshalArrayParam(raw, &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result))
	}
	if result[0].Symbol != "AAPL" || result[0].Quantity != 10 {
		t.Errorf("item 0: got %+v", result[0])
	}
	if result[1].Symbol != "MSFT" || result[1].CurrentPrice != 410.5 {
		t.Errorf("item 1: got %+v", result[1])
	}
}

func TestUnmarshalArrayParam_StringEncodedObjects(t *testing.T) {
	raw := json.RawMessage(`["{\"symbol\":\"AAPL\",\"quantity\":10,\"purchase_price\":150}","{\"symbol\":\"MSFT\",\"quantity\":2,\"purchase_price\":300,\"current_price\":410.5}"]`)
	var result []models.Position
	if err := unmarshalArrayParam(raw, &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result))
	}
	if result[1].Symbol != "MSFT" || result[1].CurrentPrice != 410.5 {
		t.Errorf("item 1: got %+v", result[1])
	}
}

func TestUnmarshalArrayParam_EmptyArray(t *testing.T) {
	var result []models.Position
	if err := unmarshalArrayParam(json.RawMessage(`[]`), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected 0 items, got %d", len(result))
	}
}

func TestUnmarshalArrayParam_InvalidJSON(t *testing.T) {
	var result []models.Position
	if err := unmarshalArrayParam(json.RawMessage(`not json`), &result); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestUnmarshalArrayParam_InvalidStringContent(t *testing.T) {
	var result []models.Position
	if err := unmarshalArrayParam(json.RawMessage(`["not a json object","also not"]`), &result); err == nil {
		t.Fatal("expected error for non-object strings")
	}
}
