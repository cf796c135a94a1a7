package auth

import (
	"context"
	"testing"
)

func TestUserIDFromContext(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), "user-1")

	id, ok := UserIDFromContext(ctx)
	if !ok {
		t.Fatal("UserIDFromContext() ok = false, want true")
	}
	if id != "user-1" {
		t.Errorf("UserIDFromContext() = %q, want %q", id, "user-1")
	}
}

func TestUserIDFromContextMissing(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Error("UserIDFromContext() ok = true for untouched context")
	}

	// An empty id counts as unauthenticated.
	ctx := ContextWithUserID(context.Background(), "")
	if _, ok := UserIDFromContext(ctx); ok {
		t.Error("UserIDFromContext() ok = true for empty user id")
	}
}
