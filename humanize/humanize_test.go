package humanize

import (
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/logger"
)

type stub struct{ name string }

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.New(container.WithID("test_faber"), container.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("container.New failed: %v", err)
	}
	_ = c.Register("foo", "bar")
	_ = c.Register("bar", "baz")
	_ = c.Protect("closure", func() string { return "Hello!" })
	_ = c.Register("stub", container.Factory(func(_ *container.Container, args container.Args) (any, error) {
		return &stub{}, nil
	}))
	return c
}

func TestHumanize(t *testing.T) {
	c := newContainer(t)
	_, _ = c.Get("stub", container.List("foo"))
	_, _ = c.Get("stub", nil)
	_, _ = c.Get("stub", container.List("foo", "bar"))
	_ = c.Freeze("foo")
	_ = c.Freeze("closure")

	info := Humanize(c)
	if info.ID != "test_faber" || info.Hash != c.Token() {
		t.Errorf("unexpected identity: %s / %s", info.ID, info.Hash)
	}
	wantProps := map[string]any{"foo": "bar", "bar": "baz", "closure": "{{Anonymous function}}"}
	if !reflect.DeepEqual(info.Properties, wantProps) {
		t.Errorf("unexpected properties: %v", info.Properties)
	}
	if !reflect.DeepEqual(info.Factories, []string{"stub"}) {
		t.Errorf("unexpected factories: %v", info.Factories)
	}
	if !reflect.DeepEqual(info.Frozen, []string{"closure", "foo"}) {
		t.Errorf("unexpected frozen ids: %v", info.Frozen)
	}

	group := info.CachedObjects["stub"]
	if len(info.CachedObjects) != 1 || len(group) != 3 {
		t.Fatalf("expected three objects grouped under stub, got %v", info.CachedObjects)
	}
	numArgs := map[int]bool{}
	for i, obj := range group {
		if obj.Type != "*humanize.stub" || obj.Entry != "stub" {
			t.Errorf("unexpected object info: %+v", obj)
		}
		if i > 0 && group[i-1].Key > obj.Key {
			t.Error("expected group sorted by key")
		}
		numArgs[obj.NumArgs] = true
	}
	if !numArgs[0] || !numArgs[1] || !numArgs[2] {
		t.Errorf("expected argument counts 0, 1 and 2, got %v", numArgs)
	}
}

func TestInfoJSON(t *testing.T) {
	c := newContainer(t)
	_, _ = c.Get("stub", nil)

	data, err := Humanize(c).JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, field := range []string{"id", "hash", "properties", "factories", "cached_objects", "frozen"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("expected field %q in %s", field, data)
		}
	}
	if !strings.Contains(string(data), `"num_args": 0`) {
		t.Errorf("expected object metadata in %s", data)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "hello", "hello"},
		{"int", 1, 1},
		{"nil", nil, nil},
		{"func", func() {}, "{{Anonymous function}}"},
		{"struct pointer", &stub{}, "{{Instance of: *humanize.stub}}"},
		{"struct", stub{}, "{{Instance of: humanize.stub}}"},
		{"slice", []string{"a"}, []string{"a"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Describe(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestObjectIndex(t *testing.T) {
	hash := "0123456789abcdef"
	tests := []struct {
		key  string
		want string
	}{
		{"stub_" + hash, "stub"},
		{"stub_" + hash + "_deadbeef", "stub"},
		{"my_entry_" + hash + "_deadbeef", "my_entry"},
		{"unrelated", "unrelated"},
	}
	for _, tc := range tests {
		if got := ObjectIndex(tc.key, hash); got != tc.want {
			t.Errorf("ObjectIndex(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
