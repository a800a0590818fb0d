package parse

import "testing"

type sample struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// TestStripFences covers fenced, fenced-with-info-string, and unfenced
// content.
func TestStripFences(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := StripFences(testCase.content); got != testCase.want {
				t.Errorf("StripFences = %q, want %q", got, testCase.want)
			}
		})
	}
}

// TestAs_ValidJSON verifies straight decoding of clean model output.
func TestAs_ValidJSON(t *testing.T) {
	result, err := As[sample](`{"title":"Notes","tags":["a","b"]}`)
	if err != nil {
		t.Fatalf("As returned error: %v", err)
	}
	if result.Title != "Notes" || len(result.Tags) != 2 {
		t.Errorf("result = %+v", result)
	}
}

// TestAs_FencedJSON verifies the fence is stripped before decoding.
func TestAs_FencedJSON(t *testing.T) {
	result, err := As[sample]("```json\n{\"title\":\"Notes\",\"tags\":[]}\n```")
	if err != nil {
		t.Fatalf("As returned error: %v", err)
	}
	if result.Title != "Notes" {
		t.Errorf("Title = %q, want Notes", result.Title)
	}
}

// TestAs_RepairsDamagedJSON verifies minor damage (trailing comma, single
// quotes) is repaired rather than failing outright.
func TestAs_RepairsDamagedJSON(t *testing.T) {
	result, err := As[sample](`{"title": "Notes", "tags": ["a", "b",],}`)
	if err != nil {
		t.Fatalf("As returned error: %v", err)
	}
	if result.Title != "Notes" || len(result.Tags) != 2 {
		t.Errorf("result = %+v", result)
	}
}

// TestAs_UnrepairableContent verifies prose that is not JSON at all comes
// back as an error, not a zero value masquerading as success.
func TestAs_UnrepairableContent(t *testing.T) {
	_, err := As[sample]("I'm sorry, I can't answer in JSON.")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
