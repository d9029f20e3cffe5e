package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestFarmIDCtxKey(t *testing.T) {
	if FarmIDCtxKey.String() != "farmID" {
		t.Errorf("expected 'farmID', got '%s'", FarmIDCtxKey.String())
	}
}

func TestGetFarmIDFromContext_Success(t *testing.T) {
	farmID := uuid.New()
	ctx := context.WithValue(context.Background(), FarmIDCtxKey, farmID)

	got, ok := GetFarmIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != farmID {
		t.Errorf("expected farmID=%s, got %s", farmID, got)
	}
}

func TestGetFarmIDFromContext_Missing(t *testing.T) {
	_, ok := GetFarmIDFromContext(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestGetFarmIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), FarmIDCtxKey, "not-a-uuid")

	_, ok := GetFarmIDFromContext(ctx)
	if ok {
		t.Fatal("expected ok=false for wrong value type")
	}
}
