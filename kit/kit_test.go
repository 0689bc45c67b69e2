package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				order = append(order, name+"_before")
				resp, err := next(ctx, req)
				order = append(order, name+"_after")
				return resp, err
			}
		}
	}

	base := func(_ context.Context, _ any) (any, error) {
		order = append(order, "endpoint")
		return "ok", nil
	}

	chained := Chain(mw("a"), mw("b"), mw("c"))(base)
	resp, err := chained(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp != "ok" {
		t.Fatalf("response: got %v", resp)
	}

	expected := []string{"a_before", "b_before", "c_before", "endpoint", "c_after", "b_after", "a_after"}
	if len(order) != len(expected) {
		t.Fatalf("order length: got %d, want %d", len(order), len(expected))
	}
	for i, v := range expected {
		if order[i] != v {
			t.Fatalf("order[%d]: got %q, want %q", i, order[i], v)
		}
	}
}

func TestChain_ErrorPropagation(t *testing.T) {
	errFail := errors.New("fail")
	base := func(_ context.Context, _ any) (any, error) {
		return nil, errFail
	}

	noop := func(next Endpoint) Endpoint { return next }
	chained := Chain(noop)(base)

	_, err := chained(context.Background(), nil)
	if !errors.Is(err, errFail) {
		t.Fatalf("error: got %v, want %v", err, errFail)
	}
}

func TestContext_Transport_Default(t *testing.T) {
	ctx := context.Background()
	if v := GetTransport(ctx); v != "http" {
		t.Fatalf("default transport: got %q, want 'http'", v)
	}
}

func TestContext_Transport_Set(t *testing.T) {
	ctx := WithTransport(context.Background(), "mcp")
	if v := GetTransport(ctx); v != "mcp" {
		t.Fatalf("transport: got %q", v)
	}
}

func TestContext_TraceID(t *testing.T) {
	ctx := context.Background()
	if v := GetTraceID(ctx); v != "" {
		t.Fatalf("trace_id default: got %q", v)
	}
	ctx = WithTraceID(ctx, "trc_xyz")
	if v := GetTraceID(ctx); v != "trc_xyz" {
		t.Fatalf("trace_id: got %q", v)
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	errFail := errors.New("fail")

	ok := Logging(logger, "ok")(func(_ context.Context, req any) (any, error) { return req, nil })
	resp, err := ok(WithTraceID(context.Background(), "t1"), "x")
	if err != nil || resp != "x" {
		t.Fatalf("got %v, %v", resp, err)
	}
	if !strings.Contains(buf.String(), "trace_id=t1") || !strings.Contains(buf.String(), "endpoint=ok") {
		t.Errorf("log line missing attrs: %s", buf.String())
	}

	buf.Reset()
	bad := Logging(logger, "bad")(func(context.Context, any) (any, error) { return nil, errFail })
	if _, err := bad(context.Background(), nil); !errors.Is(err, errFail) {
		t.Fatalf("error: got %v", err)
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("failure not logged at warn: %s", buf.String())
	}
}

func TestRecover(t *testing.T) {
	base := func(_ context.Context, _ any) (any, error) {
		panic("boom")
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ep := Chain(Logging(logger, "explode"), Recover())(base)
	resp, err := ep(context.Background(), nil)
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("got %v, want ErrPanic", err)
	}
	if resp != nil {
		t.Errorf("response: got %v, want nil", resp)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q does not carry the panic value", err)
	}
	if !strings.Contains(buf.String(), "endpoint failed") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}
