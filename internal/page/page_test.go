package page

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUnmarshalJSON_TypedFields(t *testing.T) {
	var p Page
	input := `{"id":"8cdu-123","name":"Root","content":"# Hi","pages":[{"id":"8cdu-456","name":"Child"}],"date_created":1700000000000}`
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if p.ID != "8cdu-123" {
		t.Errorf("ID = %q, want %q", p.ID, "8cdu-123")
	}
	if p.Name == nil || *p.Name != "Root" {
		t.Errorf("Name = %v, want Root", p.Name)
	}
	if p.Content == nil || *p.Content != "# Hi" {
		t.Errorf("Content = %v, want # Hi", p.Content)
	}
	if len(p.Pages) != 1 || p.Pages[0].ID != "8cdu-456" {
		t.Fatalf("Pages = %+v, want one child 8cdu-456", p.Pages)
	}
	if p.Pages[0].HasContent() {
		t.Error("child without content should report HasContent() = false")
	}
}

func TestUnmarshalJSON_NumericID(t *testing.T) {
	var p Page
	if err := json.Unmarshal([]byte(`{"id":123,"content":"x"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.ID != "123" {
		t.Errorf("ID = %q, want %q", p.ID, "123")
	}
	if p.EffectiveName() != "123" {
		t.Errorf("EffectiveName() = %q, want %q", p.EffectiveName(), "123")
	}
}

func TestUnmarshalJSON_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[]`},
		{"missing id", `{"name":"x"}`},
		{"bool id", `{"id":true}`},
		{"numeric name", `{"id":"a","name":5}`},
		{"object pages", `{"id":"a","pages":{"id":"b"}}`},
		{"null child", `{"id":"a","pages":[null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Page
			if err := json.Unmarshal([]byte(tt.input), &p); err == nil {
				t.Errorf("Unmarshal(%s) expected error", tt.input)
			}
		})
	}
}

func TestEffectiveName(t *testing.T) {
	empty := ""
	named := "Spec"

	tests := []struct {
		name string
		page *Page
		want string
	}{
		{"name present", &Page{ID: "1", Name: &named}, "Spec"},
		{"name absent", &Page{ID: "1"}, "1"},
		{"name empty", &Page{ID: "1", Name: &empty}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.EffectiveName(); got != tt.want {
				t.Errorf("EffectiveName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasContentAndChildren(t *testing.T) {
	var p Page
	if err := json.Unmarshal([]byte(`{"id":"a","content":"","pages":[]}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !p.HasContent() {
		t.Error("empty content should count as present")
	}
	if p.HasChildren() {
		t.Error("empty pages should not count as children")
	}

	var nulls Page
	if err := json.Unmarshal([]byte(`{"id":"a","content":null,"pages":null}`), &nulls); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if nulls.HasContent() || nulls.HasChildren() {
		t.Error("null content and pages should count as absent")
	}
}

func TestMetadata_DropsPagesKeepsOrder(t *testing.T) {
	var p Page
	input := `{"parent_id":"p","id":"a","pages":[{"id":"b"}],"name":"Root","content":"hello","archived":false}`
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	meta := p.Metadata()
	if _, ok := meta.Get(KeyPages); ok {
		t.Error("metadata should not contain pages")
	}

	var keys []string
	for _, f := range meta {
		keys = append(keys, f.Key)
	}
	if got := strings.Join(keys, ","); got != "parent_id,id,name,content,archived" {
		t.Errorf("keys = %s, want source order without pages", got)
	}

	// the page itself still has its children
	if len(p.Pages) != 1 {
		t.Errorf("Metadata() must not change the page, Pages = %d", len(p.Pages))
	}
}

func TestMetadata_MarshalIndent(t *testing.T) {
	var p Page
	if err := json.Unmarshal([]byte(`{"id":"a","name":"Root","content":"hello","pages":[{"id":"b"}]}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	data, err := p.Metadata().MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	want := "{\n  \"id\": \"a\",\n  \"name\": \"Root\",\n  \"content\": \"hello\"\n}\n"
	if string(data) != want {
		t.Errorf("MarshalIndent() = %q, want %q", data, want)
	}
}

func TestMetadata_PreservesValuesVerbatim(t *testing.T) {
	var p Page
	input := `{"id":"a","content":"x","creator":{"id":42,"tags":["a","b"]},"score":1.50,"html":"<b>&</b>"}`
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	data, err := p.Metadata().MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	creator, ok := parsed["creator"].(map[string]any)
	if !ok || creator["id"] != float64(42) {
		t.Errorf("creator = %v, want nested object preserved", parsed["creator"])
	}
	if !strings.Contains(string(data), `1.50`) {
		t.Errorf("numbers should keep their literal form: %s", data)
	}
	if parsed["html"] != "<b>&</b>" {
		t.Errorf("html = %v, want unchanged", parsed["html"])
	}
}

func TestMetadata_GoConstructedPage(t *testing.T) {
	p := New("a")
	name := "Root"
	content := "body"
	p.Name = &name
	p.Content = &content
	p.Pages = []*Page{New("b")}

	data, err := p.Metadata().MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if parsed["id"] != "a" || parsed["name"] != "Root" || parsed["content"] != "body" {
		t.Errorf("metadata = %v", parsed)
	}
	if _, ok := parsed["pages"]; ok {
		t.Error("metadata should not contain pages")
	}
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	input := `{"id":"a","z":1,"pages":[{"id":"b","content":"c"}],"name":"n"}`
	var p Page
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	out, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal() = %s, want %s", out, input)
	}
}

func TestUnmarshalJSON_DuplicateKeyLastWins(t *testing.T) {
	var p Page
	if err := json.Unmarshal([]byte(`{"id":"a","name":"first","content":"x","name":"second"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.EffectiveName() != "second" {
		t.Errorf("EffectiveName() = %q, want %q", p.EffectiveName(), "second")
	}
	if n := len(p.Metadata()); n != 3 {
		t.Errorf("len(Metadata()) = %d, want 3", n)
	}
}
