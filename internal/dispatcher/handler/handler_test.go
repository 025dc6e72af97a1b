package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/dispatcher/execctx"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
)

func TestHandlerFunc(t *testing.T) {
	var got handler.Action
	fn := handler.NewHandlerFunc("test.run", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		got = action
		return handler.Success()
	})

	result := fn.Handle(handler.Action{Name: "test.run", Count: 2, Source: handler.SourceKey}, execctx.New())

	if got.Count != 2 || got.Source != handler.SourceKey {
		t.Errorf("handler saw %+v", got)
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if cmds := fn.Commands(); len(cmds) != 1 || cmds[0] != "test.run" {
		t.Errorf("Commands() = %v", cmds)
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := handler.NewHandlerFunc("test.nil", nil)
	result := fn.Handle(handler.Action{Name: "test.nil"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestResultStatusString(t *testing.T) {
	tests := []struct {
		status handler.ResultStatus
		want   string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.ResultStatus(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	if r := handler.NoOpWithMessage("nothing"); !r.IsNoOp() || r.Message != "nothing" {
		t.Errorf("NoOpWithMessage = %+v", r)
	}

	errBoom := errors.New("boom")
	if r := handler.Error(errBoom); !r.IsError() || !errors.Is(r.Error, errBoom) {
		t.Errorf("Error = %+v", r)
	}

	if r := handler.Errorf("bad %d", 1); r.Error == nil || r.Error.Error() != "bad 1" {
		t.Errorf("Errorf = %+v", r)
	}

	r := handler.Selected(block.Range{StartLine: 2, EndLine: 5})
	if !r.IsOK() || r.Range == nil || *r.Range != (block.Range{StartLine: 2, EndLine: 5}) {
		t.Errorf("Selected = %+v", r)
	}
}

func TestResultBuilders(t *testing.T) {
	r := handler.Selected(block.Range{StartLine: 0, EndLine: 4}).
		WithMessage("done").
		WithSteps(2).
		WithScrollTo(7, 3, false)

	if r.Message != "done" {
		t.Errorf("Message = %q", r.Message)
	}
	if r.Steps != 2 {
		t.Errorf("Steps = %d, want 2", r.Steps)
	}
	st := r.Scroll
	if st == nil || st.Line != 7 || st.Column != 3 || st.Center {
		t.Errorf("Scroll = %+v", st)
	}
	if handler.Success().Scroll != nil {
		t.Error("Success should not scroll")
	}
	if handler.Selected(block.Range{}).Steps != 1 {
		t.Error("Selected should count one step")
	}
}
