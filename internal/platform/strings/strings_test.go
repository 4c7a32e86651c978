package strings

import (
	"reflect"
	"testing"
)

func TestIfEmpty(t *testing.T) {
	if got := IfEmpty([]int{1, 2}, []int{9}); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("non-empty: %v", got)
	}
	if got := IfEmpty(nil, []string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("empty: %v", got)
	}
}

func TestMustStringAndPrefix(t *testing.T) {
	if MustString(" a ", "name") != " a " {
		t.Fatalf("MustString changed its input")
	}
	if got := MustPrefix(" periods/ "); got != "/periods" {
		t.Fatalf("MustPrefix = %q", got)
	}
	for _, f := range []func(){
		func() { MustString("  ", "name") },
		func() { MustPrefix(" / ") },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			f()
		}()
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV("1, 2,,", " 3 ", "")
	if !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("SplitCSV = %v", got)
	}
	if got := SplitCSV(); got != nil {
		t.Fatalf("no input = %v", got)
	}
}

func TestDedupe(t *testing.T) {
	if got := Dedupe([]string{"b", "a", "b", "c", "a"}); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("Dedupe = %v", got)
	}
	if got := Dedupe([]int{7}); !reflect.DeepEqual(got, []int{7}) {
		t.Fatalf("single = %v", got)
	}
}
