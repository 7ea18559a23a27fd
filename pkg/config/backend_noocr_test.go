//go:build !ocr

package config

import "testing"

func TestDefaultBackendWithoutOCR(t *testing.T) {
	if got := Default().Oracle.Backend; got != BackendNone {
		t.Errorf("default backend = %q, want %q in builds without ocr", got, BackendNone)
	}
}
