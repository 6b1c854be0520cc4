package jsondoc

import (
	"strings"
	"testing"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	obj, err := Parse([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": ["x", 2.5]}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	keys := obj.Keys()
	want := []string{"zeta", "alpha", "mid"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}

	alpha, ok := obj.Object("alpha")
	if !ok {
		t.Fatal("alpha should be an object")
	}
	if got := strings.Join(alpha.Keys(), ","); got != "b,a" {
		t.Errorf("alpha keys = %s, want b,a", got)
	}
}

func TestMarshal_RoundTripsFormatting(t *testing.T) {
	in := `{
  "version": 1,
  "projects": {
    "app": {
      "root": "",
      "styles": [
        "src/styles.css"
      ]
    }
  },
  "ratio": 0.75,
  "html": "<b>&</b>"
}
`
	obj, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	out, err := Marshal(obj)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip mismatch\n--- got ---\n%s\n--- want ---\n%s", out, in)
	}
}

func TestObject_SetDelete(t *testing.T) {
	obj := NewObject()
	obj.Set("a", "1")
	obj.Set("b", "2")
	obj.Set("a", "3")

	if got := strings.Join(obj.Keys(), ","); got != "a,b" {
		t.Errorf("Keys() = %s, want a,b", got)
	}
	if v, _ := obj.String("a"); v != "3" {
		t.Errorf("a = %q, want 3", v)
	}

	if !obj.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if obj.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if obj.Len() != 1 {
		t.Errorf("Len() = %d, want 1", obj.Len())
	}
}

func TestObject_EnsureReplacesNonObject(t *testing.T) {
	obj := NewObject()
	obj.Set("options", "oops")
	child := obj.Ensure("options")
	child.Set("k", "v")

	got, ok := obj.Object("options")
	if !ok || got != child {
		t.Fatal("Ensure should store a fresh object")
	}
}

func TestObject_SortKeys(t *testing.T) {
	obj := NewObject()
	obj.Set("tailwindcss", "^1.1.4")
	obj.Set("@angular-builders/custom-webpack", "^8.4.0")
	obj.Set("karma", "~4.1.0")
	obj.SortKeys()

	want := "@angular-builders/custom-webpack,karma,tailwindcss"
	if got := strings.Join(obj.Keys(), ","); got != want {
		t.Errorf("Keys() = %s, want %s", got, want)
	}
}

func TestParse_NestedEditsReachParent(t *testing.T) {
	obj, err := Parse([]byte(`{"projects": {"app": {"architect": {}}}, "list": [{"input": "a.css"}]}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	projects, _ := obj.Object("projects")
	app, _ := projects.Object("app")
	app.Ensure("architect").Set("build", "x")
	app.Set("root", "")

	list, _ := obj.Get("list")
	entry, ok := list.([]interface{})[0].(*Object)
	if !ok {
		t.Fatalf("array element is %T, want *Object", list.([]interface{})[0])
	}
	entry.Set("bundleName", "tw")

	out, err := Marshal(obj)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	for _, want := range []string{`"build": "x"`, `"root": ""`, `"bundleName": "tw"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
	if strings.Index(string(out), `"architect"`) > strings.Index(string(out), `"root"`) {
		t.Errorf("new key should follow existing keys:\n%s", out)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array at top level", `[1, 2]`},
		{"truncated", `{"a": `},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.input)
			}
		})
	}
}
