// Package cfdi extracts normalized payroll records from SAT CFDI documents
// carrying a Nomina complement and a TimbreFiscalDigital stamp.
package cfdi

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// Complement namespaces. These are fixed; only the primary CFDI namespace
// varies with the schema version.
const (
	NominaNamespace = "http://www.sat.gob.mx/nomina12"
	StampNamespace  = "http://www.sat.gob.mx/TimbreFiscalDigital"

	cfdiNamespaceBase = "http://www.sat.gob.mx/cfd/"
)

// Namespaces is the resolved namespace table for one document.
type Namespaces struct {
	CFDI   string
	Nomina string
	Stamp  string
}

// SchemaVersion derives the CFDI schema version token from the namespace URI
// of the document's root element: the final path segment of the URI, so
// "http://www.sat.gob.mx/cfd/4" yields "4". It returns "" when the root
// element carries no namespace.
func SchemaVersion(root *etree.Element) string {
	uri := root.NamespaceURI()
	if uri == "" {
		return ""
	}
	return uri[strings.LastIndex(uri, "/")+1:]
}

// ResolveNamespaces builds the namespace table needed to query
// version-specific sub-elements. An undetectable version is document-fatal:
// every qualified lookup after this point would be meaningless.
func ResolveNamespaces(root *etree.Element) (Namespaces, error) {
	version := SchemaVersion(root)
	if version == "" {
		return Namespaces{}, model.NewParseError(model.KindNamespaceNotFound, "root", "CFDI namespace not found in XML", nil)
	}
	return Namespaces{
		CFDI:   cfdiNamespaceBase + version,
		Nomina: NominaNamespace,
		Stamp:  StampNamespace,
	}, nil
}
