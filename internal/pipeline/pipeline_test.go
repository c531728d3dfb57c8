package pipeline

import (
	"context"
	"errors"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	if p.StepCount() != 3 {
		t.Fatalf("expected 3 steps, got %d", p.StepCount())
	}
	names := p.StepNames()
	for i, want := range []string{"first", "second", "third"} {
		if names[i] != want {
			t.Errorf("step %d: expected %q, got %q", i, want, names[i])
		}
	}
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(_ context.Context, _ *Run) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("a"), record("b"), record("c"))
		run := NewRun()

		if err := p.Execute(t.Context(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 3 || order[0] != "a" || order[2] != "c" {
			t.Errorf("unexpected order: %v", order)
		}
		if len(run.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %v", run.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "fail", doFunc: func(_ context.Context, _ *Run) error {
			return errors.New("boom")
		}}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		err := p.Execute(t.Context(), NewRun())
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected later step not to run")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "fail", doFunc: func(_ context.Context, _ *Run) error {
			return errors.New("boom")
		}}
		after := &mockStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddSteps(failing, after)
		run := NewRun()

		err := p.Execute(t.Context(), run)
		if err == nil {
			t.Fatal("expected first error to be returned")
		}
		if after.callCount != 1 {
			t.Error("expected later step to run")
		}
		if len(run.PerformedSteps) != 1 || run.PerformedSteps[0] != "after" {
			t.Errorf("unexpected performed steps: %v", run.PerformedSteps)
		}
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		if err := p.Execute(ctx, NewRun()); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})
}
