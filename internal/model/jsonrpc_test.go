package model

import (
	"encoding/json"
	"testing"
)

// TestNewParseError はパースエラーのIDがnullになることをテスト
func TestNewParseError(t *testing.T) {
	resp := NewParseError("unexpected token")

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed map[string]any
	json.Unmarshal(b, &parsed)

	if _, ok := parsed["id"]; !ok {
		t.Error("expected id field to be present (null)")
	}
	if parsed["id"] != nil {
		t.Errorf("expected null id, got %v", parsed["id"])
	}

	errObj := parsed["error"].(map[string]any)
	if errObj["code"].(float64) != ErrCodeParseError {
		t.Errorf("expected code %d, got %v", ErrCodeParseError, errObj["code"])
	}
}

// TestNewMethodNotFound はメソッド未検出エラーの形式をテスト
func TestNewMethodNotFound(t *testing.T) {
	resp := NewMethodNotFound(42, "no/such/method")

	if resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("expected code %d, got %d", ErrCodeMethodNotFound, resp.Error.Code)
	}
	if resp.Error.Message != "Method not found" {
		t.Errorf("expected 'Method not found', got %q", resp.Error.Message)
	}
	if resp.ID != 42 {
		t.Errorf("expected id 42, got %v", resp.ID)
	}
}

// TestNewResponse は成功レスポンスの形式をテスト
func TestNewResponse(t *testing.T) {
	resp := NewResponse(1, map[string]any{"ok": true})

	if resp.JSONRPC != "2.0" {
		t.Errorf("expected jsonrpc 2.0, got %q", resp.JSONRPC)
	}

	b, _ := json.Marshal(resp)
	var parsed map[string]any
	json.Unmarshal(b, &parsed)

	result := parsed["result"].(map[string]any)
	if result["ok"] != true {
		t.Errorf("expected result.ok true, got %v", result["ok"])
	}
}

// TestRPCError_DataOmitted はData省略時のomitemptyをテスト
func TestRPCError_DataOmitted(t *testing.T) {
	resp := NewInvalidParams(1, "bad params")

	b, _ := json.Marshal(resp)
	var parsed map[string]any
	json.Unmarshal(b, &parsed)

	errObj := parsed["error"].(map[string]any)
	if _, ok := errObj["data"]; ok {
		t.Error("expected data field to be omitted when empty")
	}
}
