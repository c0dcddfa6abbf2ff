package utils

import "testing"

func TestFormatCPF(t *testing.T) {
	if got := FormatCPF("11122233344"); got != "111.222.333-44" {
		t.Fatalf("FormatCPF = %q", got)
	}
	// anything that is not 11 digits long passes through verbatim
	if got := FormatCPF("123"); got != "123" {
		t.Fatalf("short value must pass through, got %q", got)
	}
}

func TestFormatCRM(t *testing.T) {
	if got := FormatCRM("98765"); got != "CRM 98765" {
		t.Fatalf("FormatCRM = %q", got)
	}
}
