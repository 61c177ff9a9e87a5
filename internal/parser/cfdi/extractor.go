package cfdi

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// Deduction type codes from the SAT nomina catalog.
const (
	deductionTypeIMSS = "001"
	deductionTypeISR  = "002"
)

const dateLayout = "2006-01-02"

// Extract parses one CFDI document and assembles the normalized payroll
// record. Any failure is document-fatal: the caller gets no record and a
// *model.ParseError naming the reason. A nil error guarantees a complete
// record with every default already substituted.
func Extract(content []byte) (*model.PayrollRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, model.NewParseError(model.KindMalformedXML, "document", "not well-formed XML", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, model.NewParseError(model.KindMalformedXML, "document", "document has no root element", nil)
	}

	ns, err := ResolveNamespaces(root)
	if err != nil {
		return nil, err
	}

	record := &model.PayrollRecord{
		Client:      model.NotFound,
		Position:    model.NotFound,
		GrossIncome: attrValue(root, "SubTotal", model.ZeroAmount),
		IMSS:        model.ZeroAmount,
		ISR:         model.ZeroAmount,
	}

	// Emisor is a direct child of the root; the Nomina complement may sit
	// anywhere beneath it (usually inside cfdi:Complemento).
	if emisor := childElement(root, ns.CFDI, "Emisor"); emisor != nil {
		record.Client = attrValue(emisor, "Nombre", model.NotFound)
	}

	startText := model.NotFound
	endText := model.NotFound
	if nomina := findDescendant(root, ns.Nomina, "Nomina"); nomina != nil {
		if receptor := childElement(nomina, ns.Nomina, "Receptor"); receptor != nil {
			record.Position = attrValue(receptor, "Puesto", model.NotFound)
		}
		startText = attrValue(nomina, "FechaInicialPago", model.NotFound)
		endText = attrValue(nomina, "FechaFinalPago", model.NotFound)
		record.IMSS, record.ISR = extractDeductions(nomina, ns)
	}

	stamp := findDescendant(root, ns.Stamp, "TimbreFiscalDigital")
	if stamp == nil {
		return nil, model.NewParseError(model.KindMissingStamp, "TimbreFiscalDigital", "digital stamp node not found", nil)
	}
	folio := stamp.SelectAttrValue("UUID", "")
	if folio == "" {
		return nil, model.NewParseError(model.KindMissingStamp, "UUID", "digital stamp carries no UUID attribute", nil)
	}
	record.FiscalFolio = folio

	// The defaulted "Not Found" is not a valid date, so a document without a
	// Nomina pay period fails here.
	if record.StartDate, err = parseDate("FechaInicialPago", startText); err != nil {
		return nil, err
	}
	if record.EndDate, err = parseDate("FechaFinalPago", endText); err != nil {
		return nil, err
	}

	return record, nil
}

// extractDeductions scans the Deduccion entries in document order keeping
// the first value per type that moves off the "0.00" default, and stops as
// soon as both IMSS and ISR have been captured. Entries past that point are
// never inspected.
func extractDeductions(nomina *etree.Element, ns Namespaces) (imss, isr string) {
	imss, isr = model.ZeroAmount, model.ZeroAmount

	deducciones := childElement(nomina, ns.Nomina, "Deducciones")
	if deducciones == nil {
		return imss, isr
	}

	for _, d := range deducciones.ChildElements() {
		if d.Tag != "Deduccion" || d.NamespaceURI() != ns.Nomina {
			continue
		}
		switch d.SelectAttrValue("TipoDeduccion", "") {
		case deductionTypeIMSS:
			if imss == model.ZeroAmount {
				imss = d.SelectAttrValue("Importe", model.ZeroAmount)
			}
		case deductionTypeISR:
			if isr == model.ZeroAmount {
				isr = d.SelectAttrValue("Importe", model.ZeroAmount)
			}
		}
		if imss != model.ZeroAmount && isr != model.ZeroAmount {
			break
		}
	}
	return imss, isr
}

// childElement returns the first direct child matching the namespace URI and
// local tag, or nil.
func childElement(parent *etree.Element, nsURI, local string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == local && child.NamespaceURI() == nsURI {
			return child
		}
	}
	return nil
}

// findDescendant searches the subtree beneath parent in document order for
// the first element matching the namespace URI and local tag, or nil.
func findDescendant(parent *etree.Element, nsURI, local string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == local && child.NamespaceURI() == nsURI {
			return child
		}
		if found := findDescendant(child, nsURI, local); found != nil {
			return found
		}
	}
	return nil
}

// attrValue returns the attribute's value, or fallback when the attribute is
// absent. Default substitution stays an explicit step so it is auditable.
func attrValue(el *etree.Element, key, fallback string) string {
	if attr := el.SelectAttr(key); attr != nil {
		return attr.Value
	}
	return fallback
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, model.NewParseError(model.KindInvalidDate, field,
			fmt.Sprintf("%q is not a valid YYYY-MM-DD date", value), err)
	}
	return t, nil
}
