package pyre

import (
	"reflect"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"literal", "hello", false},
		{"alternation", "foo|bar", false},
		{"intersection", "(.*a.*)&(.*b.*)", false},
		{"complement", "~(abc)", false},
		{"class", "[a-z]+", false},
		{"group", "(ab)+c", false},
		{"unterminated class", "[a-", true},
		{"unbalanced group", "(ab", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
		})
	}
}

func TestMustCompilePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustCompile to panic on invalid pattern")
		}
	}()
	MustCompile("[a-")
}

func TestMatchString(t *testing.T) {
	re := MustCompile(`\d+`)
	if !re.MatchString("room 42") {
		t.Error("expected a match")
	}
	if re.MatchString("no digits here") {
		t.Error("expected no match")
	}
}

func TestFindString(t *testing.T) {
	re := MustCompile(`\d+`)
	if got := re.FindString("age: 42 years"); got != "42" {
		t.Errorf("FindString = %q, want %q", got, "42")
	}
	if got := re.FindString("no digits"); got != "" {
		t.Errorf("FindString = %q, want empty", got)
	}
}

func TestFindStringIndex(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindStringIndex("age: 42 years")
	want := []int{5, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindStringIndex = %v, want %v", got, want)
	}
}

func TestFindAllString(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllString("1 2 3", -1)
	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllString = %v, want %v", got, want)
	}

	limited := re.FindAllString("1 2 3", 2)
	if len(limited) != 2 {
		t.Errorf("FindAllString with n=2 returned %d matches, want 2", len(limited))
	}
}

func TestFindStringSubmatch(t *testing.T) {
	re := MustCompile(`(\d+)-(\d+)`)
	got := re.FindStringSubmatch("12-345")
	want := []string{"12-345", "12", "345"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindStringSubmatch = %v, want %v", got, want)
	}
}

func TestFindStringSubmatchUnmatchedGroup(t *testing.T) {
	re := MustCompile(`(a)|(b)`)
	got := re.FindStringSubmatch("b")
	if got == nil {
		t.Fatal("expected a match")
	}
	if got[0] != "b" || got[1] != "" || got[2] != "b" {
		t.Errorf("FindStringSubmatch = %v, want [b, , b]", got)
	}
}

func TestFindAllStringSubmatch(t *testing.T) {
	re := MustCompile(`(\w)=(\d)`)
	got := re.FindAllStringSubmatch("a=1 b=2", -1)
	want := [][]string{{"a=1", "a", "1"}, {"b=2", "b", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllStringSubmatch = %v, want %v", got, want)
	}
}

func TestNumSubexp(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)\.(\w+)`)
	if got := re.NumSubexp(); got != 3 {
		t.Errorf("NumSubexp() = %d, want 3", got)
	}
}

func TestString(t *testing.T) {
	re := MustCompile(`\d+`)
	if got := re.String(); got != `\d+` {
		t.Errorf("String() = %q, want %q", got, `\d+`)
	}
}

func TestIntersectionAndComplement(t *testing.T) {
	// Matches strings containing "a" but not "b".
	re := MustCompile(`(.*a.*)&~(.*b.*)`)
	if !re.MatchString("cat") {
		t.Error("expected cat to match")
	}
	if re.MatchString("bat") {
		t.Error("expected bat not to match (contains b)")
	}
	if re.MatchString("cot") {
		t.Error("expected cot not to match (no a)")
	}
}

func TestDebugNonEmpty(t *testing.T) {
	re := MustCompile(`a+b`)
	if re.Debug() == "" {
		t.Error("expected non-empty debug dump")
	}
}
