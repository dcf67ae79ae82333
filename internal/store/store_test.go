package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/medassist-ai/rag-chatbot/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "chatbot.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func ts() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("Open(blank path) succeeded, want error")
	}
}

func TestTurnsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		turn := model.ConversationTurn{
			SessionID: "s1",
			Role:      model.RoleUser,
			Content:   fmt.Sprintf("turn %d", i),
			Timestamp: ts(),
		}
		if i%2 == 1 {
			turn.Role = model.RoleAssistant
		}
		if err := st.AppendTurn(ctx, turn); err != nil {
			t.Fatalf("AppendTurn(%d) error: %v", i, err)
		}
	}

	turns, err := st.ListTurns(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("ListTurns() error: %v", err)
	}
	if len(turns) != 5 {
		t.Fatalf("ListTurns() returned %d turns, want 5", len(turns))
	}
	for i, turn := range turns {
		if want := fmt.Sprintf("turn %d", i); turn.Content != want {
			t.Fatalf("turn %d = %q, want %q (creation order)", i, turn.Content, want)
		}
	}
	if turns[0].Role != model.RoleUser || turns[1].Role != model.RoleAssistant {
		t.Fatalf("roles not preserved: %s, %s", turns[0].Role, turns[1].Role)
	}
}

func TestListTurnsLimitKeepsEarliest(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		turn := model.ConversationTurn{SessionID: "s1", Role: model.RoleUser, Content: fmt.Sprintf("turn %d", i), Timestamp: ts()}
		if err := st.AppendTurn(ctx, turn); err != nil {
			t.Fatalf("AppendTurn() error: %v", err)
		}
	}

	turns, err := st.ListTurns(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("ListTurns(limit=2) error: %v", err)
	}
	if len(turns) != 2 || turns[0].Content != "turn 0" || turns[1].Content != "turn 1" {
		t.Fatalf("ListTurns(limit=2) = %+v, want earliest two", turns)
	}
}

func TestListTurnsIsolatesSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.AppendTurn(ctx, model.ConversationTurn{SessionID: "s1", Role: model.RoleUser, Content: "mine", Timestamp: ts()})
	st.AppendTurn(ctx, model.ConversationTurn{SessionID: "s2", Role: model.RoleUser, Content: "theirs", Timestamp: ts()})

	turns, err := st.ListTurns(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("ListTurns() error: %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "mine" {
		t.Fatalf("ListTurns(s1) = %+v, want only s1 turns", turns)
	}
}

func TestDeleteTurnsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.AppendTurn(ctx, model.ConversationTurn{SessionID: "s1", Role: model.RoleUser, Content: "hello", Timestamp: ts()})

	if err := st.DeleteTurns(ctx, "s1"); err != nil {
		t.Fatalf("DeleteTurns() error: %v", err)
	}
	turns, err := st.ListTurns(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("ListTurns() error: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("ListTurns() after delete = %d turns, want 0", len(turns))
	}

	if err := st.DeleteTurns(ctx, "s1"); err != nil {
		t.Fatalf("DeleteTurns() on empty session error: %v", err)
	}
}

func TestReactionUpsertReplacesValue(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first := model.Reaction{
		SessionID:      "s1",
		MessageID:      "m1",
		Reaction:       model.ReactionLike,
		MessageContent: "good answer",
		Timestamp:      ts(),
	}
	if err := st.UpsertReaction(ctx, first); err != nil {
		t.Fatalf("UpsertReaction() error: %v", err)
	}

	second := first
	second.Reaction = model.ReactionDislike
	second.MessageContent = "changed my mind"
	if err := st.UpsertReaction(ctx, second); err != nil {
		t.Fatalf("UpsertReaction() replace error: %v", err)
	}

	reactions, err := st.ListReactions(ctx, 10)
	if err != nil {
		t.Fatalf("ListReactions() error: %v", err)
	}
	if len(reactions) != 1 {
		t.Fatalf("ListReactions() = %d rows, want 1 after upsert", len(reactions))
	}
	if reactions[0].Reaction != model.ReactionDislike || reactions[0].MessageContent != "changed my mind" {
		t.Fatalf("reaction not replaced: %+v", reactions[0])
	}
}

func TestReactionContentTruncated(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	long := make([]byte, model.MaxReactionContentLen+500)
	for i := range long {
		long[i] = 'a'
	}
	r := model.Reaction{
		SessionID:      "s1",
		MessageID:      "m1",
		Reaction:       model.ReactionLike,
		MessageContent: string(long),
		Timestamp:      ts(),
	}
	if err := st.UpsertReaction(ctx, r); err != nil {
		t.Fatalf("UpsertReaction() error: %v", err)
	}

	reactions, err := st.ListReactions(ctx, 1)
	if err != nil {
		t.Fatalf("ListReactions() error: %v", err)
	}
	if got := len(reactions[0].MessageContent); got != model.MaxReactionContentLen {
		t.Fatalf("stored content length = %d, want %d", got, model.MaxReactionContentLen)
	}
}

func TestDeleteReaction(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	r := model.Reaction{SessionID: "s1", MessageID: "m1", Reaction: model.ReactionLike, Timestamp: ts()}
	if err := st.UpsertReaction(ctx, r); err != nil {
		t.Fatalf("UpsertReaction() error: %v", err)
	}
	if err := st.DeleteReaction(ctx, "s1", "m1"); err != nil {
		t.Fatalf("DeleteReaction() error: %v", err)
	}

	reactions, err := st.ListReactions(ctx, 10)
	if err != nil {
		t.Fatalf("ListReactions() error: %v", err)
	}
	if len(reactions) != 0 {
		t.Fatalf("ListReactions() after delete = %d rows, want 0", len(reactions))
	}

	// Deleting a missing reaction is not an error.
	if err := st.DeleteReaction(ctx, "s1", "m1"); err != nil {
		t.Fatalf("DeleteReaction() on missing row error: %v", err)
	}
}

func TestReactionsListedNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := model.Reaction{
			SessionID: "s1",
			MessageID: fmt.Sprintf("m%d", i),
			Reaction:  model.ReactionLike,
			Timestamp: ts(),
		}
		if err := st.UpsertReaction(ctx, r); err != nil {
			t.Fatalf("UpsertReaction() error: %v", err)
		}
	}

	reactions, err := st.ListReactions(ctx, 2)
	if err != nil {
		t.Fatalf("ListReactions() error: %v", err)
	}
	if len(reactions) != 2 || reactions[0].MessageID != "m2" || reactions[1].MessageID != "m1" {
		t.Fatalf("ListReactions(limit=2) = %+v, want newest first", reactions)
	}
}

func TestVisitCounts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, session := range []string{"s1", "s1", "s2"} {
		v := model.Visit{SessionID: session, VisitedAt: ts(), UserAgent: "test-agent"}
		if err := st.AppendVisit(ctx, v); err != nil {
			t.Fatalf("AppendVisit() error: %v", err)
		}
	}

	counts, err := st.VisitCounts(ctx)
	if err != nil {
		t.Fatalf("VisitCounts() error: %v", err)
	}
	if counts.Total != 3 || counts.Unique != 2 {
		t.Fatalf("VisitCounts() = %+v, want total 3 unique 2", counts)
	}

	visits, err := st.ListVisits(ctx, 10)
	if err != nil {
		t.Fatalf("ListVisits() error: %v", err)
	}
	if len(visits) != 3 || visits[0].SessionID != "s2" {
		t.Fatalf("ListVisits() = %+v, want newest first", visits)
	}
}

func TestPing(t *testing.T) {
	st := openTestStore(t)
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
}
