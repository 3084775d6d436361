package prompt

import (
	"reflect"
	"testing"
)

func TestGenerator(t *testing.T) {
	g := NewGenerator[int, any](func(y *Yielder[int, any]) {
		for i := 0; i < 3; i++ {
			y.Yield(i)
		}
	})

	var got []int
	for g.Next() {
		got = append(got, g.Recv())
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got=%v want=%v", got, want)
	}
	if g.Next() {
		t.Error("Next returned true after completion")
	}
}

func TestGeneratorSend(t *testing.T) {
	g := NewGenerator[int, int](func(y *Yielder[int, int]) {
		n := 0
		for {
			step := y.Yield(n)
			if step == 0 {
				return
			}
			n += step
		}
	})

	steps := []int{1, 2, 3, 0}
	var got []int
	for i := 0; g.Next(); i++ {
		got = append(got, g.Recv())
		g.Send(steps[i])
	}
	if want := []int{0, 1, 3, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("got=%v want=%v", got, want)
	}
}

func TestGeneratorStop(t *testing.T) {
	cleaned := false
	g := NewGenerator[int, any](func(y *Yielder[int, any]) {
		defer func() { cleaned = true }()
		for i := 0; ; i++ {
			y.Yield(i)
		}
	})

	if !g.Next() {
		t.Fatal("generator did not start")
	}
	g.Stop()
	if !cleaned {
		t.Error("deferred statement did not run on stop")
	}
	if g.Next() {
		t.Error("Next returned true after stop")
	}
	g.Stop() // idempotent
}
