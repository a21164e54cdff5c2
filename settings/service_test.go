package settings

import (
	goerrors "errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/plainconf/settings-api/errors"
	"go.uber.org/ratelimit"
)

func requestStatus(t *testing.T, err error) int {
	t.Helper()

	var reqErr *errors.RequestError
	if !goerrors.As(err, &reqErr) {
		t.Fatalf("expected a RequestError, got %v", err)
	}

	return reqErr.StatusCode
}

func TestTypedAccessors(t *testing.T) {
	service := NewService(NewFileStore())

	t.Run("int round trip", func(t *testing.T) {
		service.SetInt("answer", 42)

		value, err := service.GetInt("answer")
		if err != nil {
			t.Fatal(err)
		}
		if value != 42 {
			t.Errorf("expected 42, got %d", value)
		}

		raw, err := service.Get("answer")
		if err != nil {
			t.Fatal(err)
		}
		if raw != "42" {
			t.Errorf("expected raw value %q, got %q", "42", raw)
		}
	})

	t.Run("float round trip", func(t *testing.T) {
		service.SetFloat("ratio", 2.5)

		value, err := service.GetFloat("ratio")
		if err != nil {
			t.Fatal(err)
		}
		if value != 2.5 {
			t.Errorf("expected 2.5, got %f", value)
		}

		raw, err := service.Get("ratio")
		if err != nil {
			t.Fatal(err)
		}
		if raw != "2.5" {
			t.Errorf("expected raw value %q, got %q", "2.5", raw)
		}
	})

	t.Run("bool round trip", func(t *testing.T) {
		service.SetBool("enabled", true)
		if value, err := service.GetBool("enabled"); err != nil || !value {
			t.Errorf("expected true, got %v (err %v)", value, err)
		}

		service.SetBool("enabled", false)
		if value, err := service.GetBool("enabled"); err != nil || value {
			t.Errorf("expected false, got %v (err %v)", value, err)
		}
	})

	t.Run("int is read by the float accessor", func(t *testing.T) {
		service.SetInt("count", 7)

		value, err := service.GetFloat("count")
		if err != nil {
			t.Fatal(err)
		}
		if value != 7 {
			t.Errorf("expected 7, got %f", value)
		}
	})
}

func TestConversionErrors(t *testing.T) {
	service := NewService(NewFileStore())
	service.Set("age", "notanumber")

	t.Run("int", func(t *testing.T) {
		_, err := service.GetInt("age")
		if err == nil {
			t.Fatal("Expected an error")
		}

		if status := requestStatus(t, err); status != http.StatusBadRequest {
			t.Errorf("expected status code %d, got %d", http.StatusBadRequest, status)
		}

		var convErr *ConversionError
		if !goerrors.As(err, &convErr) {
			t.Fatalf("expected a ConversionError, got %v", err)
		}
		if convErr.Key != "age" || convErr.Value != "notanumber" || convErr.Target != "int" {
			t.Errorf("unexpected conversion error details: %+v", convErr)
		}
	})

	t.Run("float", func(t *testing.T) {
		if _, err := service.GetFloat("age"); err == nil {
			t.Error("Expected an error")
		}
	})

	t.Run("bool is permissive", func(t *testing.T) {
		// Unrecognized strings read as false, never as an error
		cases := map[string]bool{
			"true":  true,
			"1":     true,
			"false": false,
			"0":     false,
			"TRUE":  false,
			"maybe": false,
			"":      false,
		}

		for raw, want := range cases {
			service.Set("flag", raw)

			got, err := service.GetBool("flag")
			if err != nil {
				t.Errorf("%q: unexpected error: %v", raw, err)
				continue
			}
			if got != want {
				t.Errorf("%q: expected %v, got %v", raw, want, got)
			}
		}
	})
}

func TestMissingKey(t *testing.T) {
	service := NewService(NewFileStore())

	_, err := service.Get("nope")
	if err == nil {
		t.Fatal("Expected an error")
	}

	if status := requestStatus(t, err); status != http.StatusNotFound {
		t.Errorf("expected status code %d, got %d", http.StatusNotFound, status)
	}

	var notFound *KeyNotFoundError
	if !goerrors.As(err, &notFound) {
		t.Errorf("expected a KeyNotFoundError, got %v", err)
	}

	// Typed accessors report the same way
	if _, err := service.GetInt("nope"); err == nil {
		t.Error("Expected an error")
	}
	if _, err := service.GetBool("nope"); err == nil {
		t.Error("Expected an error")
	}
}

func TestList(t *testing.T) {
	service := NewService(NewFileStore())
	service.Set("b", "2")
	service.Set("a", "1")
	service.Set("c", "3")

	want := []Setting{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "c", Value: "3"},
	}

	if diff := cmp.Diff(want, service.List()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceSave(t *testing.T) {
	t.Run("without a loaded file", func(t *testing.T) {
		service := NewService(NewFileStore())

		err := service.Save()
		if err == nil {
			t.Fatal("Expected an error")
		}

		if status := requestStatus(t, err); status != http.StatusConflict {
			t.Errorf("expected status code %d, got %d", http.StatusConflict, status)
		}

		if !goerrors.Is(err, ErrNoFileLoaded) {
			t.Errorf("expected ErrNoFileLoaded, got %v", err)
		}
	})

	t.Run("with a rate limiter", func(t *testing.T) {
		store := NewFileStore()
		service := NewService(store, WithSaveRatelimiter(ratelimit.New(100)))

		path := filepath.Join(t.TempDir(), "out.conf")
		service.Set("a", "1")

		if err := service.SaveAs(path); err != nil {
			t.Fatal(err)
		}
		if err := service.SaveAs(path); err != nil {
			t.Fatal(err)
		}
	})
}
