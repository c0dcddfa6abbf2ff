package utils

import "fmt"

// FormatCPF renders an 11-digit CPF as 000.000.000-00. Values of any other
// length are returned verbatim; the stored CPF is opaque to the system.
func FormatCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", cpf[0:3], cpf[3:6], cpf[6:9], cpf[9:11])
}

// FormatCRM renders a doctor's license number for display.
func FormatCRM(crm string) string {
	return "CRM " + crm
}
