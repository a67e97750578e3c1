package lines

import (
	"io"
	"strings"
	"testing"
)

func TestScannerNextLine(t *testing.T) {
	sc := New(strings.NewReader("first\nsecond\nthird"))

	line, n, err := sc.NextLine()
	if err != nil || line != "first" || n != 1 {
		t.Fatalf("first call = %q, %d, %v; want first, 1, nil", line, n, err)
	}
	line, n, err = sc.NextLine()
	if err != nil || line != "second" || n != 2 {
		t.Fatalf("second call = %q, %d, %v; want second, 2, nil", line, n, err)
	}
	line, n, err = sc.NextLine()
	if err != nil || line != "third" || n != 3 {
		t.Fatalf("third call = %q, %d, %v; want third, 3, nil", line, n, err)
	}
	_, _, err = sc.NextLine()
	if err != io.EOF {
		t.Fatalf("fourth call error = %v, want io.EOF", err)
	}
}

func TestScannerEmptyInput(t *testing.T) {
	sc := New(strings.NewReader(""))
	_, n, err := sc.NextLine()
	if err != io.EOF || n != 0 {
		t.Fatalf("empty input should EOF immediately at line 0, got %d, %v", n, err)
	}
}
