package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseImages(t *testing.T) {
	cases := map[string][]string{
		``:                      {},
		`   `:                   {},
		`a.jpg`:                 {"a.jpg"},
		`["a.jpg","b.jpg"]`:     {"a.jpg", "b.jpg"},
		`["a.jpg",""," "]`:      {"a.jpg"},
		`{a.jpg,b.jpg}`:         {"a.jpg", "b.jpg"},
		`{"a b.jpg", c.jpg}`:    {"a b.jpg", "c.jpg"},
		`{"quote\"d.jpg",NULL}`: {`quote"d.jpg`},
		`{}`:                    {},
		`[not json`:             {"[not json"},
	}

	for in, want := range cases {
		if got := ParseImages(in); !reflect.DeepEqual(got, want) {
			t.Errorf("ParseImages(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestImageListUnmarshal(t *testing.T) {
	cases := map[string]ImageList{
		`null`:                    {},
		`["a.jpg"]`:               {"a.jpg"},
		`"[\"a.jpg\",\"b.jpg\"]"`: {"a.jpg", "b.jpg"},
		`"{a.jpg,b.jpg}"`:         {"a.jpg", "b.jpg"},
		`"a.jpg"`:                 {"a.jpg"},
	}

	for in, want := range cases {
		var got ImageList
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unmarshal %s = %#v, want %#v", in, got, want)
		}
	}
}

func TestImageListRejectsNumbers(t *testing.T) {
	var got ImageList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected error")
	}
}

func TestImageListMarshalsNilAsEmptyArray(t *testing.T) {
	b, err := json.Marshal(Product{Name: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	json.Unmarshal(b, &m)
	if arr, ok := m["images"].([]any); !ok || len(arr) != 0 {
		t.Fatalf("expected empty images array, got %v", m["images"])
	}
}
