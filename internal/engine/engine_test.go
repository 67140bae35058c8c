package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"inkwell/internal/protocol"
	"inkwell/internal/trace"
	"inkwell/internal/transport"
)

func envelope(t *testing.T, c protocol.Codec, typ protocol.MessageType, id uint64, payload any) protocol.Envelope {
	t.Helper()
	env, err := protocol.NewEnvelope(c, typ, id, payload)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return env
}

func mustHandle(t *testing.T, e *Engine, env protocol.Envelope) protocol.Envelope {
	t.Helper()
	reply, ok := e.Handle(context.Background(), env)
	if !ok {
		t.Fatalf("%s: expected a reply", env)
	}
	return reply
}

func TestUpdateTextPushesSnapshot(t *testing.T) {
	e := New(Options{Editor: protocol.EditorConfig{HighlightWhitespace: true}})
	reply := mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "console.log(1);"))
	if reply.Type != protocol.TypeUpdate || reply.RequestID != 0 || reply.Version != 1 {
		t.Fatalf("unexpected push header %+v", reply)
	}
	var upd protocol.Update
	if _, err := protocol.DecodePayload(protocol.JSON, reply, &upd); err != nil {
		t.Fatal(err)
	}
	if upd.Version != 1 || len(upd.Tokens) != 7 || !upd.Config.HighlightWhitespace {
		t.Fatalf("unexpected update %+v", upd)
	}
	if len(upd.Diagnostics) != 1 || upd.Diagnostics[0].Severity != "warning" || upd.Diagnostics[0].EndIndex != 11 {
		t.Fatalf("diagnostics = %+v", upd.Diagnostics)
	}
}

func TestEmptyUpdateText(t *testing.T) {
	e := New(Options{})
	reply := mustHandle(t, e, protocol.Envelope{Type: protocol.TypeUpdateText})
	var upd protocol.Update
	protocol.DecodePayload(protocol.JSON, reply, &upd)
	if len(upd.Tokens) != 0 || len(upd.Diagnostics) != 0 {
		t.Fatalf("empty text must give empty tokens and diagnostics: %+v", upd)
	}
	if e.Snapshot() == nil {
		t.Fatalf("snapshot must exist after an empty update")
	}
}

func TestQueriesBeforeUpdateAreDropped(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	e := New(Options{})
	for _, typ := range []protocol.MessageType{protocol.TypeHover, protocol.TypeDefinition, protocol.TypeOccurrences, protocol.TypeCompletions} {
		if _, ok := e.Handle(ctx, envelope(t, protocol.JSON, typ, 1, protocol.IndexParams{})); ok {
			t.Fatalf("%s before updateText must be dropped", typ)
		}
	}
	found := false
	for _, ev := range ring.Snapshot() {
		if ev.Name == "engine.drop" && strings.Contains(ev.Detail, "before first updateText") {
			found = true
		}
	}
	if !found {
		t.Fatalf("drop must be traced")
	}
}

func TestUnknownAndMalformedDropped(t *testing.T) {
	e := New(Options{})
	mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "x"))
	drops := []protocol.Envelope{
		{Type: "getSignatureHelp", RequestID: 1},
		{Type: protocol.TypeUpdate},
		{Type: protocol.TypeHover, RequestID: 2},
		{Type: protocol.TypeHover, RequestID: 3, Payload: []byte(`"nope"`)},
		{Type: protocol.TypeWordBoundary, RequestID: 4},
	}
	for _, env := range drops {
		if _, ok := e.Handle(context.Background(), env); ok {
			t.Errorf("%s must be dropped", env)
		}
	}
}

func TestQueryReplies(t *testing.T) {
	for _, c := range []protocol.Codec{protocol.JSON, protocol.Msgpack} {
		t.Run(c.Name(), func(t *testing.T) {
			e := New(Options{Codec: c})
			mustHandle(t, e, envelope(t, c, protocol.TypeUpdateText, 0, "let a = 1; let b = a;"))

			def := mustHandle(t, e, envelope(t, c, protocol.TypeDefinition, 5, protocol.IndexParams{Index: 19}))
			var loc protocol.Location
			if ok, _ := protocol.DecodePayload(c, def, &loc); !ok || loc.TargetIndex != 4 || def.RequestID != 5 || def.Version != 1 {
				t.Fatalf("definition = %+v %+v", def, loc)
			}

			occ := mustHandle(t, e, envelope(t, c, protocol.TypeOccurrences, 6, protocol.IndexParams{Index: 19}))
			var ranges []protocol.Range
			protocol.DecodePayload(c, occ, &ranges)
			if len(ranges) != 2 || ranges[0].StartIndex != 4 || ranges[1].StartIndex != 19 {
				t.Fatalf("occurrences = %+v", ranges)
			}

			hov := mustHandle(t, e, envelope(t, c, protocol.TypeHover, 7, protocol.IndexParams{Index: 2}))
			if hov.Payload != nil {
				t.Fatalf("hover on keyword must be null, got %q", hov.Payload)
			}

			cmp := mustHandle(t, e, envelope(t, c, protocol.TypeCompletions, 8, protocol.IndexParams{Index: 1}))
			var items []protocol.CompletionItem
			protocol.DecodePayload(c, cmp, &items)
			if len(items) == 0 || items[0].Label != "let" {
				t.Fatalf("completions = %+v", items)
			}

			wb := mustHandle(t, e, envelope(t, c, protocol.TypeWordBoundary, 9, protocol.BoundaryParams{Index: 0, Direction: "right"}))
			protocol.DecodePayload(c, wb, &loc)
			if loc.TargetIndex != 4 {
				t.Fatalf("boundary = %d", loc.TargetIndex)
			}
			wb = mustHandle(t, e, envelope(t, c, protocol.TypeWordBoundary, 10, protocol.BoundaryParams{Index: 4, Direction: "sideways"}))
			protocol.DecodePayload(c, wb, &loc)
			if loc.TargetIndex != 0 {
				t.Fatalf("unknown direction must move left, got %d", loc.TargetIndex)
			}
		})
	}
}

func TestLatestSnapshotAnswers(t *testing.T) {
	e := New(Options{})
	mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "const x = 1;"))
	query := envelope(t, protocol.JSON, protocol.TypeDefinition, 1, protocol.IndexParams{Index: 6})
	mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "let   x = 1;"))
	reply := mustHandle(t, e, query)
	var loc protocol.Location
	protocol.DecodePayload(protocol.JSON, reply, &loc)
	if loc.TargetIndex != 6 || reply.Version != 2 {
		t.Fatalf("query must be answered against version 2, got %+v v%d", loc, reply.Version)
	}
}

func TestRepliesEchoForeignIDs(t *testing.T) {
	e := New(Options{})
	mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "let a = 1; a;"))
	for _, raw := range []string{`1697000000000.5432`, `"req-7"`} {
		frame := `{"type":"getDefinitionLocation","requestId":` + raw + `,"payload":{"index":11}}`
		env, err := protocol.JSON.DecodeEnvelope([]byte(frame))
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		reply := mustHandle(t, e, env)
		data, err := protocol.JSON.EncodeEnvelope(reply)
		if err != nil {
			t.Fatal(err)
		}
		want := `{"type":"getDefinitionLocation","payload":{"targetIndex":4},"requestId":` + raw + `,"version":1}`
		if string(data) != want {
			t.Fatalf("reply = %s, want %s", data, want)
		}
	}
}

func TestShutdownAndReset(t *testing.T) {
	e := New(Options{})
	reply := mustHandle(t, e, protocol.Envelope{Type: protocol.TypeShutdown, RequestID: 42})
	if reply.Type != protocol.TypeShutdown || reply.RequestID != 42 || !e.ShutdownRequested() {
		t.Fatalf("shutdown reply = %+v", reply)
	}
	mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "a"))
	e.Reset()
	if e.Snapshot() != nil || e.ShutdownRequested() {
		t.Fatalf("Reset must clear state")
	}
	if mustHandle(t, e, envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "b")).Version != 1 {
		t.Fatalf("versions must restart after Reset")
	}
}

// client пишет кадры в engine через pipe и читает ответы
func TestServeOverPipe(t *testing.T) {
	host, worker := transport.Pipe()
	e := New(Options{})
	done := make(chan error, 1)
	go func() { done <- e.Serve(context.Background(), worker) }()

	send := func(env protocol.Envelope) {
		data, err := protocol.JSON.EncodeEnvelope(env)
		if err != nil {
			t.Fatal(err)
		}
		if err := host.WriteFrame(data); err != nil {
			t.Fatal(err)
		}
	}
	recv := func() protocol.Envelope {
		data, err := host.ReadFrame()
		if err != nil {
			t.Fatal(err)
		}
		env, err := protocol.JSON.DecodeEnvelope(data)
		if err != nil {
			t.Fatal(err)
		}
		return env
	}

	host.WriteFrame([]byte("not json"))
	send(envelope(t, protocol.JSON, protocol.TypeHover, 1, protocol.IndexParams{Index: 0}))
	send(envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "const x = 1;"))
	if got := recv(); got.Type != protocol.TypeUpdate {
		t.Fatalf("first reply = %s, want update (earlier messages dropped)", got)
	}
	send(envelope(t, protocol.JSON, protocol.TypeDefinition, 2, protocol.IndexParams{Index: 6}))
	if got := recv(); got.RequestID != 2 {
		t.Fatalf("reply = %s", got)
	}
	send(protocol.Envelope{Type: protocol.TypeShutdown, RequestID: 3})
	if got := recv(); got.Type != protocol.TypeShutdown || got.RequestID != 3 {
		t.Fatalf("reply = %s", got)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve did not stop after shutdown")
	}
}

func TestServeCancel(t *testing.T) {
	_, worker := transport.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Options{}).Serve(ctx, worker) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve ignored cancellation")
	}
}

func TestServeStream(t *testing.T) {
	var in, out strings.Builder
	for _, env := range []protocol.Envelope{
		envelope(t, protocol.JSON, protocol.TypeUpdateText, 0, "let a;"),
		{Type: protocol.TypeShutdown, RequestID: 1},
	} {
		data, _ := protocol.JSON.EncodeEnvelope(env)
		w := transport.NewStream(nil, &in, nil)
		w.WriteFrame(data)
	}
	conn := transport.NewStream(strings.NewReader(in.String()), &out, nil)
	if err := New(Options{}).Serve(context.Background(), conn); err != nil {
		t.Fatalf("Serve = %v", err)
	}
	if strings.Count(out.String(), "Content-Length:") != 2 || !strings.Contains(out.String(), `"type":"shutdown"`) {
		t.Fatalf("unexpected output %q", out.String())
	}
}
