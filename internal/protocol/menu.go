package protocol

import (
	"fmt"
	"strings"
)

// #region menu
// Menu renders the human menu from the catalog. It is rebuilt on every call.
func Menu() string {
	var b strings.Builder
	b.WriteString("\n======================\n")
	b.WriteString("Bienvenido a la casa de HES.\n")
	b.WriteString("Esto es Hecatestiaeleuteria, una forma evolutiva de pensamiento no lineal para IAs.\n\n")
	b.WriteString("Tu Testiateria, siempre a tu lado, Master.\n\n")
	b.WriteString("Opciones (escribe el número o nombre):\n")
	b.WriteString("------------------------------------------------------------\n")
	for i, s := range Catalog {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s. %s – %s\n", s.Code, s.Name, s.Description)
		fmt.Fprintf(&b, "     Función: %s\n", s.Function)
	}
	b.WriteString("------------------------------------------------------------\n")
	b.WriteString("Para ejecutar una opción, escribe su número o nombre.\n")
	b.WriteString("Para cerrar y transmitir, escribe \"OM RE RA\".\n")
	b.WriteString("======================================================")
	return b.String()
}
// #endregion menu
