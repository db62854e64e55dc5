package ini

import (
	"reflect"
	"testing"
)

func TestParseBasicSections(t *testing.T) {
	doc, err := Parse([]byte(`
; leading comment
[core]
name = unic
count = 42

[empty_dropped]

[net]
host = "127.0.0.1" # trailing comment
tag = 'quoted single'
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := doc.ParameterString("core", "name", ""); got != "unic" {
		t.Errorf("name = %q, want unic", got)
	}
	if got := doc.ParameterInt("core", "count", -1); got != 42 {
		t.Errorf("count = %d, want 42", got)
	}
	if got := doc.ParameterString("net", "host", ""); got != "127.0.0.1" {
		t.Errorf("host = %q, want 127.0.0.1", got)
	}
	if got := doc.ParameterString("net", "tag", ""); got != "quoted single" {
		t.Errorf("tag = %q, want %q", got, "quoted single")
	}

	for _, s := range doc.Sections() {
		if s.Name == "empty_dropped" {
			t.Error("section with zero keys should have been dropped")
		}
	}
}

func TestParseBOMIsStripped(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[a]\nk = v\n")...)
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.ParameterString("a", "k", ""); got != "v" {
		t.Errorf("k = %q, want v", got)
	}
}

func TestDuplicateKeyLastWins(t *testing.T) {
	doc, err := Parse([]byte("[s]\nk = first\nk = second\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.ParameterString("s", "k", ""); got != "second" {
		t.Errorf("k = %q, want second", got)
	}
}

func TestParameterBool(t *testing.T) {
	doc, err := Parse([]byte("[s]\na = TRUE\nb = False\nc = 7\nd = 0\ne = not_a_bool\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cases := map[string]bool{"a": true, "b": false, "c": true, "d": false}
	for key, want := range cases {
		if got := doc.ParameterBool("s", key, !want); got != want {
			t.Errorf("ParameterBool(%q) = %v, want %v", key, got, want)
		}
	}
	if got := doc.ParameterBool("s", "e", true); got != false {
		t.Errorf("ParameterBool(e) with unparsable existing value should be false, got %v", got)
	}
	if got := doc.ParameterBool("s", "missing", true); got != true {
		t.Errorf("ParameterBool(missing) should return default, got %v", got)
	}
}

func TestParameterDouble(t *testing.T) {
	doc, err := Parse([]byte("[s]\nx = 3.14\nhuge = 1e400\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.ParameterDouble("s", "x", 0); got != 3.14 {
		t.Errorf("x = %v, want 3.14", got)
	}
	if got := doc.ParameterDouble("s", "huge", 0); got != 1e308 {
		t.Errorf("huge = %v, want clamped to 1e308", got)
	}
}

func TestParameterList(t *testing.T) {
	doc, err := Parse([]byte("[s]\nitems = { alpha beta  gamma }\nscalar = not_a_list\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, ok := doc.ParameterList("s", "items")
	if !ok {
		t.Fatal("expected items to parse as a list")
	}
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParameterList(items) = %v, want %v", got, want)
	}
	if _, ok := doc.ParameterList("s", "scalar"); ok {
		t.Error("scalar value should not parse as a list")
	}
}

func TestParameterStringDefault(t *testing.T) {
	doc, err := Parse([]byte("[s]\nk = v\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.ParameterString("missing", "k", "fallback"); got != "fallback" {
		t.Errorf("missing section should return default, got %q", got)
	}
	if got := doc.ParameterString("s", "missing", "fallback"); got != "fallback" {
		t.Errorf("missing key should return default, got %q", got)
	}
}

func TestSetAndFree(t *testing.T) {
	doc := New()
	doc.Set("s", "k", "v")
	if got := doc.ParameterString("s", "k", ""); got != "v" {
		t.Errorf("k = %q, want v", got)
	}
	if err := doc.Free(); err != nil {
		t.Errorf("Free: %v", err)
	}
}
