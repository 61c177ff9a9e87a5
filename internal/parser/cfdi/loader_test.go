package cfdi_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/payroll-tracker/internal/parser/cfdi"
)

func receiptWithFolio(folio string) []byte {
	return []byte(strings.Replace(sampleReceipt, sampleFolio, folio, 1))
}

func TestLoader_SortsByFilenameAndSkipsFailures(t *testing.T) {
	files := []cfdi.File{
		{Name: "c.xml", Content: receiptWithFolio("CCCCCCCC-0000-0000-0000-000000000000")},
		{Name: "a.xml", Content: []byte("<not-xml")},
		{Name: "b.xml", Content: receiptWithFolio("BBBBBBBB-0000-0000-0000-000000000000")},
	}

	records, failures := cfdi.NewLoader(nil).Load(files)

	require.Len(t, records, 2)
	assert.Equal(t, "BBBBBBBB-0000-0000-0000-000000000000", records[0].FiscalFolio)
	assert.Equal(t, "CCCCCCCC-0000-0000-0000-000000000000", records[1].FiscalFolio)

	require.Len(t, failures, 1)
	assert.Equal(t, "a.xml", failures[0].Name)
	assert.Contains(t, failures[0].Error(), "a.xml")
}

func TestLoader_EmptyInput(t *testing.T) {
	records, failures := cfdi.NewLoader(nil).Load(nil)
	assert.Empty(t, records)
	assert.Empty(t, failures)
}

func TestLoader_DoesNotMutateInput(t *testing.T) {
	files := []cfdi.File{
		{Name: "z.xml", Content: receiptWithFolio("ZZZZZZZZ-0000-0000-0000-000000000000")},
		{Name: "a.xml", Content: receiptWithFolio("AAAAAAAA-0000-0000-0000-000000000000")},
	}

	_, failures := cfdi.NewLoader(nil).Load(files)
	require.Empty(t, failures)

	// The caller's slice keeps its original order.
	assert.Equal(t, "z.xml", files[0].Name)
	assert.Equal(t, "a.xml", files[1].Name)
}

func TestLoader_AllFailuresStillIndependent(t *testing.T) {
	files := []cfdi.File{
		{Name: "1.xml", Content: []byte("<broken")},
		{Name: "2.xml", Content: receiptWithFolio("22222222-0000-0000-0000-000000000000")},
		{Name: "3.xml", Content: []byte(`<Comprobante/>`)},
	}

	records, failures := cfdi.NewLoader(nil).Load(files)

	require.Len(t, records, 1)
	assert.Equal(t, "22222222-0000-0000-0000-000000000000", records[0].FiscalFolio)
	require.Len(t, failures, 2)
	assert.Equal(t, "1.xml", failures[0].Name)
	assert.Equal(t, "3.xml", failures[1].Name)
}
