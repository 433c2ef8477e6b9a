package cashbill

import (
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keys keep their order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("number", "B1")
		w.Append("date", "2024-01-01T00:00:00.000Z")
		w.Append("totalAmount", M(31.5))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"number":"B1","date":"2024-01-01T00:00:00.000Z","totalAmount":31.5}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("first error wins", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("ch", make(chan int))
		w.Append("a", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("MarshalJSON() want error for an unsupported value")
		}
	})
}
